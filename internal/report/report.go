// Package report validates match results and assembles the compliance
// report returned to callers.
package report

import (
	"github.com/citelint/citelint/internal/format"
	"github.com/citelint/citelint/internal/match"
)

// Status is the overall report state.
type Status string

const (
	// StatusOK means a reference list was present and matching ran.
	StatusOK Status = "ok"
	// StatusNoReferences means there were no references to match
	// against; every citation is unmatched.
	StatusNoReferences Status = "no_references"
)

// Report is the aggregate compliance report for one analysis run.
//
// Numeric range citations expand to one result per contained index, and
// the citation totals count those expanded results.
type Report struct {
	Status            Status       `json:"status"`
	TotalCitations    int          `json:"total_citations"`
	TotalReferences   int          `json:"total_references"`
	MatchedCount      int          `json:"matched_count"`
	UnmatchedCount    int          `json:"unmatched_count"`
	YearMismatchCount int          `json:"year_mismatch_count"`
	MatchRate         float64      `json:"match_rate"`
	Results           []Result     `json:"results"`
	CorrectionsNeeded []Correction `json:"corrections_needed"`
	UnusedReferences  []int        `json:"unused_references"`
}

// Result reports the outcome for one citation occurrence.
type Result struct {
	CitationRaw             string  `json:"citation_raw"`
	CitationPosition        int     `json:"citation_position"`
	MatchedReferenceOrdinal *int    `json:"matched_reference_ordinal"`
	MatchedReferenceRaw     *string `json:"matched_reference_raw"`
	ConfidenceTier          string  `json:"confidence_tier"`
	UnmatchedReason         string  `json:"unmatched_reason,omitempty"`
	Warning                 *string `json:"warning"`
	Authors                 string  `json:"authors,omitempty"`
}

// Correction is one year-mismatch fix: the citation's year disagrees with
// the matched reference's year, which is taken as authoritative.
type Correction struct {
	Original         string `json:"original"`
	Corrected        string `json:"corrected"`
	ExpectedYear     int    `json:"expected_year"`
	FoundYear        int    `json:"found_year"`
	ReferenceOrdinal int    `json:"reference_ordinal"`
	Reference        string `json:"reference"`
}

// Assemble folds the match results, year-mismatch corrections, and orphan
// set into the final report. It performs no further inference.
func Assemble(results []match.Result, orphans []int, totalReferences int, authorFormat format.AuthorFormat) *Report {
	r := &Report{
		Status:            StatusOK,
		TotalReferences:   totalReferences,
		Results:           []Result{},
		CorrectionsNeeded: []Correction{},
		UnusedReferences:  []int{},
	}
	if totalReferences == 0 {
		r.Status = StatusNoReferences
	}

	for _, m := range results {
		entry := Result{
			CitationRaw:      m.Citation.RawText,
			CitationPosition: m.Citation.Position,
			ConfidenceTier:   string(m.Tier),
			UnmatchedReason:  string(m.Reason),
			Authors:          format.Authors(m.Citation.Authors, authorFormat),
		}
		if m.Matched() {
			r.MatchedCount++
			ordinal := m.Ordinal
			raw := m.Reference.RawText
			entry.MatchedReferenceOrdinal = &ordinal
			entry.MatchedReferenceRaw = &raw
			if m.Warning != "" {
				warning := m.Warning
				entry.Warning = &warning
			}
		} else {
			r.UnmatchedCount++
		}
		r.Results = append(r.Results, entry)
	}

	r.TotalCitations = len(results)
	r.CorrectionsNeeded = yearCorrections(results)
	r.YearMismatchCount = len(r.CorrectionsNeeded)
	if r.TotalCitations > 0 {
		r.MatchRate = float64(r.MatchedCount) / float64(r.TotalCitations)
	}
	r.UnusedReferences = append(r.UnusedReferences, orphans...)

	return r
}
