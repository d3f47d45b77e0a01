// Package match resolves citation occurrences against an indexed
// reference list using a tiered, deterministic strategy.
package match

import (
	"github.com/citelint/citelint/internal/normalize"
	"github.com/citelint/citelint/internal/reference"
)

// slot is one arena cell: a reference entry plus its consumption flag.
// The flag is written only by the Engine, sequentially.
type slot struct {
	entry    reference.Entry
	key      normalize.Key
	consumed bool
}

// Index is the lookup structure over all reference entries. Entries are
// registered under their full-signature keys and, when they differ, their
// first-author keys, so truncated citations ("Smith et al.", "李三希等")
// can reach entries that list every author.
//
// Candidate lists preserve ascending ordinal order.
type Index struct {
	slots []*slot
	exact map[string][]*slot // (signature, year, suffix)
	base  map[string][]*slot // (signature, year)
	bySig map[string][]*slot // signature only
}

// NewIndex builds the index over the parsed reference list. Entries with
// unparseable headers occupy arena slots (they keep their ordinals and
// count toward the total) but are never registered for lookup.
func NewIndex(entries []reference.Entry) *Index {
	idx := &Index{
		exact: make(map[string][]*slot),
		base:  make(map[string][]*slot),
		bySig: make(map[string][]*slot),
	}
	for _, e := range entries {
		s := &slot{entry: e, key: normalize.From(e.Authors, e.Year, e.Suffix)}
		idx.slots = append(idx.slots, s)
		if !s.entry.Parsed() || s.key.Signature == "" {
			continue
		}

		idx.register(idx.exact, s.key.Exact(), s)
		idx.register(idx.base, s.key.Base(), s)
		idx.register(idx.bySig, s.key.Signature, s)
		if s.key.First != s.key.Signature {
			idx.register(idx.exact, s.key.FirstExact(), s)
			idx.register(idx.base, s.key.FirstBase(), s)
			idx.register(idx.bySig, s.key.First, s)
		}
	}
	return idx
}

func (idx *Index) register(m map[string][]*slot, key string, s *slot) {
	m[key] = append(m[key], s)
}

// Len returns the total number of reference entries.
func (idx *Index) Len() int {
	return len(idx.slots)
}

// at returns the slot for a 1-based ordinal.
func (idx *Index) at(ordinal int) *slot {
	return idx.slots[ordinal-1]
}

// Orphans returns, in ascending order, the ordinals of entries never
// consumed by any citation.
func (idx *Index) Orphans() []int {
	var orphans []int
	for _, s := range idx.slots {
		if !s.consumed {
			orphans = append(orphans, s.entry.Ordinal)
		}
	}
	return orphans
}
