// Package format renders citations and author lists for display. It is
// presentation only: nothing here influences matching.
package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/citelint/citelint/internal/normalize"
)

// AuthorFormat selects how matched-author display strings are rendered.
type AuthorFormat string

const (
	// AuthorFull renders every author name.
	AuthorFull AuthorFormat = "full"
	// AuthorAbbrev renders the first author plus a truncation marker.
	AuthorAbbrev AuthorFormat = "abbrev"
)

// ParseAuthorFormat validates a configured author_format value.
func ParseAuthorFormat(s string) (AuthorFormat, error) {
	switch AuthorFormat(s) {
	case AuthorFull, AuthorAbbrev:
		return AuthorFormat(s), nil
	case "":
		return AuthorFull, nil
	}
	return "", fmt.Errorf("invalid author_format: %q (valid: full, abbrev)", s)
}

// Citation renders an author-year citation string for an author token
// sequence, in the house style the original document uses (full-width
// year parentheses).
func Citation(authors []string, year int, suffix string) string {
	yearStr := fmt.Sprintf("%d%s", year, suffix)
	names, truncated := splitMarker(authors)
	if len(names) == 0 {
		return fmt.Sprintf("（%s）", yearStr)
	}

	if hasHan(names[0]) {
		if truncated || len(names) > 1 {
			return fmt.Sprintf("%s 等（%s）", names[0], yearStr)
		}
		return fmt.Sprintf("%s（%s）", names[0], yearStr)
	}

	surnames := make([]string, len(names))
	for i, n := range names {
		surnames[i] = Surname(n)
	}
	switch {
	case truncated || len(surnames) > 2:
		return fmt.Sprintf("%s et al.（%s）", surnames[0], yearStr)
	case len(surnames) == 2:
		return fmt.Sprintf("%s & %s（%s）", surnames[0], surnames[1], yearStr)
	default:
		return fmt.Sprintf("%s（%s）", surnames[0], yearStr)
	}
}

// Authors renders an author list for report display.
func Authors(authors []string, f AuthorFormat) string {
	names, truncated := splitMarker(authors)
	if len(names) == 0 {
		return ""
	}
	if f == AuthorAbbrev {
		if len(names) == 1 && !truncated {
			return names[0]
		}
		if hasHan(names[0]) {
			return names[0] + " 等"
		}
		return names[0] + " et al."
	}
	out := strings.Join(names, ", ")
	if truncated {
		if hasHan(names[0]) {
			return out + " 等"
		}
		return out + " et al."
	}
	return out
}

// dutchPrefixes are surname particles that belong with the family name.
var dutchPrefixes = map[string]bool{
	"van": true, "den": true, "de": true, "der": true,
	"ter": true, "ten": true, "vanden": true, "vander": true,
}

// Surname extracts the family name from a Western author name. Names
// written as "Ohanian, R." keep the part before the comma; otherwise the
// last word wins, pulling in particle prefixes ("Van Den Heuvel") and
// skipping trailing initials.
func Surname(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ",，"); i >= 0 {
		return strings.TrimSpace(name[:i])
	}

	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}

	last := len(parts) - 1
	// "Smith J." / "Smith J": the initial is not the surname.
	if len(parts) > 1 && isInitial(parts[last]) {
		last--
	}
	first := last
	for first > 0 && dutchPrefixes[strings.ToLower(parts[first-1])] {
		first--
	}
	return strings.Join(parts[first:last+1], " ")
}

// splitMarker removes a trailing truncation marker token, reporting
// whether one was present.
func splitMarker(authors []string) ([]string, bool) {
	var names []string
	truncated := false
	for _, a := range authors {
		if normalize.IsTruncationMarker(a) {
			truncated = true
			break
		}
		names = append(names, a)
	}
	return names, truncated
}

func isInitial(s string) bool {
	s = strings.TrimSuffix(s, ".")
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
