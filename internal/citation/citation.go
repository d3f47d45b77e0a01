// Package citation defines in-text citation occurrences and extracts them
// from document body text.
package citation

// Style identifies the recognized citation variant.
type Style string

const (
	// StyleAuthorYearZh is a Chinese author-year citation, e.g. 张三（2020）.
	StyleAuthorYearZh Style = "author_year_zh"
	// StyleAuthorYearEn is a Western author-year citation, e.g. (Smith, 2019).
	StyleAuthorYearEn Style = "author_year_en"
	// StyleNumeric is a bracketed index citation, e.g. [5].
	StyleNumeric Style = "numeric"
	// StyleNumericRange is a bracketed index range, e.g. [3-5].
	StyleNumericRange Style = "numeric_range"
)

// Numeric reports whether the style binds by reference ordinal rather than
// by author and year.
func (s Style) Numeric() bool {
	return s == StyleNumeric || s == StyleNumericRange
}

// Citation is one in-text citation marker.
//
// Exactly one of (Authors, Year) or (Index) is populated, according to
// Style. For StyleNumericRange, Index and IndexEnd hold the inclusive
// bounds of the range.
type Citation struct {
	RawText  string   `json:"raw_text"`
	Position int      `json:"position"` // byte offset in the source text
	Authors  []string `json:"authors,omitempty"`
	Year     int      `json:"year,omitempty"`
	Suffix   string   `json:"suffix,omitempty"` // single lowercase letter after the year
	Index    int      `json:"index,omitempty"`
	IndexEnd int      `json:"index_end,omitempty"`
	Style    Style    `json:"style"`
}
