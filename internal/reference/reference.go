// Package reference defines bibliography-list entries and parses their
// headers into matchable author/year fields.
package reference

// Entry represents one bibliography-list item.
//
// Authors, Year, and Suffix are parsed from the entry header. Entries whose
// header cannot be parsed keep zero fields: they still count toward the
// reference total but can never win a match.
type Entry struct {
	RawText string   `json:"raw_text"`
	Ordinal int      `json:"ordinal"` // 1-based position in the reference list
	Authors []string `json:"authors,omitempty"`
	Year    int      `json:"year,omitempty"`
	Suffix  string   `json:"suffix,omitempty"` // single lowercase letter after the year
}

// Parsed reports whether the entry header yielded both an author cluster
// and a publication year.
func (e *Entry) Parsed() bool {
	return len(e.Authors) > 0 && e.Year != 0
}
