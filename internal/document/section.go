// Package document supplies the ingestion collaborators around the
// engine: locating the reference-list section, segmenting it into entry
// texts, and reading supported file formats into plain text.
package document

import (
	"regexp"
	"strings"
)

// Region is a byte-offset range within the source text.
type Region struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// headingRe matches a reference-list section heading on its own line.
var headingRe = regexp.MustCompile(`(?m)^\s*#{0,6}\s*(?:[一二三四五六七八九十\d]+[、.．]\s*)?(?:参考文献|參考文獻|References|REFERENCES|Bibliography|BIBLIOGRAPHY|Works Cited)\s*[:：]?\s*$`)

// FindReferenceSection locates the reference-list region of a document:
// everything after the last reference heading. Returns an empty region at
// the end of the text when no heading is found.
func FindReferenceSection(text string) (Region, bool) {
	locs := headingRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return Region{Start: len(text), End: len(text)}, false
	}
	start := locs[len(locs)-1][1]
	if start < len(text) && text[start] == '\n' {
		start++
	}
	return Region{Start: start, End: len(text)}, true
}

// entryMarkerRe matches list markers that open a new reference entry:
// [1], ［12］, "3." or "4、".
var entryMarkerRe = regexp.MustCompile(`^\s*(?:[\[［]\d{1,3}[\]］]|\d{1,3}[\.、．])\s*`)

// SplitEntries segments reference-list text into one string per entry.
// Numbered lists split at each marker, with unnumbered lines folded into
// the preceding entry (wrapped entries); unnumbered lists treat each
// non-empty line as its own entry.
func SplitEntries(text string) []string {
	lines := strings.Split(text, "\n")

	numbered := false
	for _, line := range lines {
		if entryMarkerRe.MatchString(line) {
			numbered = true
			break
		}
	}

	var entries []string
	var current strings.Builder

	flush := func() {
		if e := strings.TrimSpace(current.String()); e != "" {
			entries = append(entries, e)
		}
		current.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if !numbered {
			entries = append(entries, trimmed)
			continue
		}
		if entryMarkerRe.MatchString(line) {
			flush()
			current.WriteString(trimmed)
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(trimmed)
	}
	flush()

	return entries
}
