package citation

import "iter"

// Extract scans body text for citation occurrences and yields them in
// ascending position order. The sequence is lazy, finite, and restartable.
//
// Recognizers are tried in pattern order at each point in the text; the
// earliest match wins, with pattern order breaking ties at the same start
// position so an author-year reading is never shadowed by a bare numeric
// bracket. A claimed span is never rescanned: scanning resumes after its
// end. Spans that match a recognizer but fail field parsing are consumed
// and dropped without any observable event.
func Extract(body string) iter.Seq[Citation] {
	return func(yield func(Citation) bool) {
		pos := 0
		for pos < len(body) {
			best := -1
			var bestLoc []int
			for i := range patterns {
				loc := patterns[i].re.FindStringSubmatchIndex(body[pos:])
				if loc == nil {
					continue
				}
				if best == -1 || loc[0] < bestLoc[0] {
					best, bestLoc = i, loc
				}
			}
			if best == -1 {
				return
			}

			p := &patterns[best]
			groups := make([]string, p.re.NumSubexp()+1)
			for g := range groups {
				lo, hi := bestLoc[2*g], bestLoc[2*g+1]
				if lo >= 0 {
					groups[g] = body[pos+lo : pos+hi]
				}
			}
			start := pos + bestLoc[0]
			raw := body[start : pos+bestLoc[1]]
			pos += bestLoc[1]

			if c, ok := p.parse(groups, raw, start); ok {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// ExtractAll collects the full occurrence sequence for body.
func ExtractAll(body string) []Citation {
	var out []Citation
	for c := range Extract(body) {
		out = append(out, c)
	}
	return out
}
