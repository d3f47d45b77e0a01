// Package engine wires the extraction, parsing, matching, and reporting
// stages into the single-document compliance pipeline.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/citelint/citelint/internal/citation"
	"github.com/citelint/citelint/internal/document"
	"github.com/citelint/citelint/internal/format"
	"github.com/citelint/citelint/internal/match"
	"github.com/citelint/citelint/internal/reference"
	"github.com/citelint/citelint/internal/report"
)

// Caller contract violations. Data-quality problems never surface as
// errors; they flow into the report.
var (
	ErrEmptyText     = errors.New("document text is empty")
	ErrInvalidRegion = errors.New("reference region out of bounds")
)

// Options holds presentation-only knobs. Nothing here affects matching.
type Options struct {
	AuthorFormat format.AuthorFormat
}

// Analyze runs the full pipeline over one document: body text plus the
// byte-offset region holding its reference list. Citation extraction and
// reference parsing run in parallel and both complete before matching
// starts, since ordinal fallback needs the full reference index. Each run
// is stateless and deterministic: identical input yields an identical
// report.
func Analyze(text string, refs document.Region, opts Options) (*report.Report, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if refs.Start < 0 || refs.End < refs.Start || refs.End > len(text) {
		return nil, fmt.Errorf("%w: [%d, %d) in %d bytes", ErrInvalidRegion, refs.Start, refs.End, len(text))
	}

	var (
		citations []citation.Citation
		entries   []reference.Entry
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		citations = citation.ExtractAll(text[:refs.Start])
		for c := range citation.Extract(text[refs.End:]) {
			c.Position += refs.End
			citations = append(citations, c)
		}
	}()
	go func() {
		defer wg.Done()
		entries = reference.ParseAll(document.SplitEntries(text[refs.Start:refs.End]))
	}()
	wg.Wait()

	eng := match.NewEngine(entries)
	results := eng.ResolveAll(func(yield func(citation.Citation) bool) {
		for _, c := range citations {
			if !yield(c) {
				return
			}
		}
	})

	return report.Assemble(results, eng.Orphans(), eng.References(), opts.AuthorFormat), nil
}

// AnalyzeDocument locates the reference section itself, then analyzes.
func AnalyzeDocument(text string, opts Options) (*report.Report, error) {
	region, _ := document.FindReferenceSection(text)
	return Analyze(text, region, opts)
}
