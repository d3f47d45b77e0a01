// Package normalize canonicalizes author clusters and years into the
// composite keys the matching engine indexes on.
//
// Normalization is a pure function of its inputs: equal keys mean equal
// normalized content, with no edit-distance fuzziness at this layer.
package normalize

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key is the comparable composite key derived from a citation occurrence
// or a reference entry header.
type Key struct {
	Signature string // all retained author tokens, normalized and joined
	First     string // first-author-only signature
	Year      int
	Suffix    string
}

// Exact returns the full lookup key (signature, year, suffix).
func (k Key) Exact() string {
	return k.Signature + "|" + strconv.Itoa(k.Year) + "|" + k.Suffix
}

// Base returns the suffix-cleared lookup key (signature, year).
func (k Key) Base() string {
	return k.Signature + "|" + strconv.Itoa(k.Year)
}

// FirstExact and FirstBase are the first-author-only variants, used to
// bridge truncated citations ("李三希等", "Smith et al.") to entries that
// list every author in full.
func (k Key) FirstExact() string {
	return k.First + "|" + strconv.Itoa(k.Year) + "|" + k.Suffix
}

// FirstBase returns the first-author, suffix-cleared lookup key.
func (k Key) FirstBase() string {
	return k.First + "|" + strconv.Itoa(k.Year)
}

// From builds the composite key for an author token sequence.
func From(authors []string, year int, suffix string) Key {
	sig, first := Signature(authors)
	return Key{Signature: sig, First: first, Year: year, Suffix: suffix}
}

// deaccent strips combining marks so that "Müller" and "Muller" normalize
// identically. CJK codepoints carry no combining marks and pass through.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Signature normalizes an ordered author token sequence into the joined
// signature and the first-author signature. When the sequence contains a
// truncation marker (等, et al.), only the tokens preceding it are
// retained.
func Signature(authors []string) (signature, first string) {
	var tokens []string
	for _, a := range authors {
		if IsTruncationMarker(a) {
			break
		}
		if t := Token(a); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return "", ""
	}
	return strings.Join(tokens, "|"), tokens[0]
}

// IsTruncationMarker reports whether an author token marks elided
// trailing authors.
func IsTruncationMarker(tok string) bool {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "等", "et al.", "et al", "and others", "others":
		return true
	}
	return false
}

// Token normalizes a single author name: whitespace collapsed, Latin
// lowercased and deaccented, punctuation stripped, bare initials dropped.
// CJK text is left untouched apart from punctuation removal.
func Token(tok string) string {
	folded, _, err := transform.String(deaccent, tok)
	if err != nil {
		folded = tok
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}

	parts := strings.Fields(b.String())
	// Drop single-letter initials ("smith j" → "smith") unless the name
	// consists of nothing else.
	var kept []string
	for _, p := range parts {
		if utf8.RuneCountInString(p) > 1 {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		kept = parts
	}
	return strings.Join(kept, " ")
}
