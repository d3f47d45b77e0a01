package report

import (
	"github.com/citelint/citelint/internal/format"
	"github.com/citelint/citelint/internal/match"
)

// refSnippetLen bounds the reference excerpt embedded in corrections.
const refSnippetLen = 100

// yearCorrections emits one correction per matched result whose citation
// year disagrees with the bound reference's year. The reference year is
// expected; the citation year was found. Numeric-style results carry no
// citation year and are never flagged.
func yearCorrections(results []match.Result) []Correction {
	corrections := []Correction{}
	for _, m := range results {
		if !m.Matched() || m.Citation.Year == 0 || m.Reference.Year == 0 {
			continue
		}
		if m.Citation.Year == m.Reference.Year {
			continue
		}
		corrections = append(corrections, Correction{
			Original:         m.Citation.RawText,
			Corrected:        format.Citation(m.Citation.Authors, m.Reference.Year, m.Reference.Suffix),
			ExpectedYear:     m.Reference.Year,
			FoundYear:        m.Citation.Year,
			ReferenceOrdinal: m.Ordinal,
			Reference:        snippet(m.Reference.RawText),
		})
	}
	return corrections
}

// snippet truncates entry text rune-safely for display inside corrections.
func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= refSnippetLen {
		return s
	}
	return string(runes[:refSnippetLen]) + "..."
}
