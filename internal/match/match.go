package match

import (
	"iter"
	"sort"

	"github.com/citelint/citelint/internal/citation"
	"github.com/citelint/citelint/internal/normalize"
	"github.com/citelint/citelint/internal/reference"
)

// Tier labels how confidently a citation was bound to a reference entry.
type Tier string

const (
	TierExact           Tier = "exact"
	TierSuffixRelaxed   Tier = "suffix_relaxed"
	TierOrdinalFallback Tier = "ordinal_fallback"
	TierAuthorOnly      Tier = "author_only"
	TierNumericIndex    Tier = "numeric_index"
)

// Reason explains why a citation could not be bound.
type Reason string

const (
	ReasonNoCandidateKey  Reason = "no_candidate_key"
	ReasonIndexOutOfRange Reason = "index_out_of_range"
	ReasonNoReferenceList Reason = "no_reference_list"
)

// WarnSuffixNotOnReference is attached when a citation's disambiguating
// suffix is absent from the entry it was bound to.
const WarnSuffixNotOnReference = "citation uses a disambiguating suffix not present on the matched reference"

// Result is the outcome for one citation occurrence. A zero Ordinal means
// unmatched, with Reason set; otherwise Tier is set and Reference holds the
// bound entry.
type Result struct {
	Citation  citation.Citation
	Ordinal   int
	Reference *reference.Entry
	Tier      Tier
	Reason    Reason
	Warning   string
}

// Matched reports whether the citation was bound to a reference entry.
func (r Result) Matched() bool {
	return r.Ordinal != 0
}

// Engine resolves citations against a reference index. It must be used
// from a single goroutine: resolution order is a correctness requirement
// (ordinal fallback depends on encounter order), so all consumption of the
// shared index is serialized through one Engine.
type Engine struct {
	idx *Index
}

// NewEngine builds an engine over the parsed reference list.
func NewEngine(entries []reference.Entry) *Engine {
	return &Engine{idx: NewIndex(entries)}
}

// ResolveAll resolves every citation in the sequence, processing
// occurrences in ascending position order regardless of the order the
// sequence yields them in.
func (e *Engine) ResolveAll(citations iter.Seq[citation.Citation]) []Result {
	var ordered []citation.Citation
	for c := range citations {
		ordered = append(ordered, c)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	var results []Result
	for _, c := range ordered {
		results = append(results, e.Resolve(c)...)
	}
	return results
}

// Resolve resolves a single citation occurrence. Numeric ranges expand to
// one Result per contained index; every other style yields exactly one.
func (e *Engine) Resolve(c citation.Citation) []Result {
	if e.idx.Len() == 0 {
		return []Result{{Citation: c, Reason: ReasonNoReferenceList}}
	}
	if c.Style.Numeric() {
		return e.resolveNumeric(c)
	}
	return []Result{e.resolveAuthorYear(c)}
}

// Orphans returns the ordinals of reference entries never bound to any
// citation.
func (e *Engine) Orphans() []int {
	return e.idx.Orphans()
}

// References returns the total number of indexed reference entries.
func (e *Engine) References() int {
	return e.idx.Len()
}

// Entry returns the reference entry at a 1-based ordinal.
func (e *Engine) Entry(ordinal int) *reference.Entry {
	return &e.idx.at(ordinal).entry
}

// resolveNumeric binds index-style citations directly by ordinal. Only the
// bounds are validated; no author or year comparison is performed.
func (e *Engine) resolveNumeric(c citation.Citation) []Result {
	lo, hi := c.Index, c.IndexEnd
	if hi == 0 {
		hi = lo
	}
	var out []Result
	for i := lo; i <= hi; i++ {
		if i < 1 || i > e.idx.Len() {
			out = append(out, Result{Citation: c, Reason: ReasonIndexOutOfRange})
			continue
		}
		s := e.idx.at(i)
		s.consumed = true
		out = append(out, Result{
			Citation:  c,
			Ordinal:   i,
			Reference: &s.entry,
			Tier:      TierNumericIndex,
		})
	}
	return out
}

// resolveAuthorYear applies the tiered strategy: exact key, then
// suffix-relaxed with ordinal fallback, then author-signature-only (which
// tolerates a year mismatch and leaves the discrepancy to the validator).
func (e *Engine) resolveAuthorYear(c citation.Citation) Result {
	key := normalize.From(c.Authors, c.Year, c.Suffix)
	if key.Signature == "" {
		return Result{Citation: c, Reason: ReasonNoCandidateKey}
	}

	// Tier 1: exact composite key. Binds only when the key is unambiguous;
	// duplicate keys are the ordinal-fallback tier's job. A repeat mention
	// of the sole holder of a key re-binds it even once consumed.
	if cands := e.idx.exact[key.Exact()]; len(cands) == 1 {
		s := cands[0]
		s.consumed = true
		return Result{Citation: c, Ordinal: s.entry.Ordinal, Reference: &s.entry, Tier: TierExact}
	}

	// Tier 2: suffix-relaxed lookup on the base key, with ordinal fallback
	// among same-keyed entries: the n-th citation of a base key binds the
	// n-th unconsumed entry holding it, in ascending ordinal order.
	if cands := e.idx.base[key.Base()]; len(cands) > 0 {
		s := firstUnconsumed(cands)
		s.consumed = true
		tier := TierOrdinalFallback
		warning := ""
		if c.Suffix != "" || len(cands) == 1 {
			tier = TierSuffixRelaxed
		}
		if c.Suffix != "" && s.entry.Suffix != c.Suffix {
			warning = WarnSuffixNotOnReference
		}
		return Result{
			Citation:  c,
			Ordinal:   s.entry.Ordinal,
			Reference: &s.entry,
			Tier:      tier,
			Warning:   warning,
		}
	}

	// Tier 3: author signature only. Tolerated exactly when one entry
	// carries the signature; the year discrepancy surfaces as a
	// correction, not a mismatch here.
	if cands := uniqueSlots(e.idx.bySig[key.Signature]); len(cands) == 1 {
		s := cands[0]
		s.consumed = true
		return Result{Citation: c, Ordinal: s.entry.Ordinal, Reference: &s.entry, Tier: TierAuthorOnly}
	}

	return Result{Citation: c, Reason: ReasonNoCandidateKey}
}

// firstUnconsumed returns the lowest-ordinal unconsumed candidate, or the
// lowest-ordinal candidate when all are consumed (the defensive tie-break:
// deterministic, never an error).
func firstUnconsumed(cands []*slot) *slot {
	for _, s := range cands {
		if !s.consumed {
			return s
		}
	}
	return cands[0]
}

// uniqueSlots deduplicates a candidate list in place-order (an entry can
// be registered under both its full and first-author signatures).
func uniqueSlots(cands []*slot) []*slot {
	var out []*slot
	seen := make(map[*slot]bool)
	for _, s := range cands {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
