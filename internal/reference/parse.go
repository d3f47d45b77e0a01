package reference

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/citelint/citelint/internal/citation"
)

var (
	// leadOrdinalRe strips list markers like [1] or ［12］ from entry heads.
	leadOrdinalRe = regexp.MustCompile(`^\s*[\[［]\d+[\]］][\.、]?\s*`)

	// yearRes are tried in order against the entry header. Parenthesized
	// years are the most reliable signal and come first; bare
	// comma/colon/space-delimited years cover GB/T style entries.
	yearRes = []*regexp.Regexp{
		regexp.MustCompile(`[（(]\s*(\d{4})([a-z])?\s*[）)]`),
		regexp.MustCompile(`[，,]\s*(\d{4})([a-z])?\b`),
		regexp.MustCompile(`[：:]\s*(\d{4})([a-z])?\b`),
		regexp.MustCompile(`\s(\d{4})([a-z])?\b`),
	}

	// Author cluster: everything before the year parenthesis, otherwise
	// before the first sentence-ending period. The year-anchored form
	// tolerates periods so "Smith, J., & Jones, K. (2020)" keeps both
	// authors.
	clusterBeforeYearRe   = regexp.MustCompile(`^([^（()）]+?)\s*[（(]\s*\d{4}`)
	clusterBeforePeriodRe = regexp.MustCompile(`^([^．.。]+?)[．.。]`)

	etAlRe    = regexp.MustCompile(`(?i)[,，]?\s*et\s+al\.?`)
	initialRe = regexp.MustCompile(`^[A-Z]\.?(?:\s*[A-Z]\.?)*$`)
)

// Parse extracts the author cluster, publication year, and disambiguating
// suffix from a single already-segmented entry text.
func Parse(ordinal int, text string) Entry {
	e := Entry{RawText: text, Ordinal: ordinal}

	head := leadOrdinalRe.ReplaceAllString(strings.TrimSpace(text), "")
	if head == "" {
		return e
	}

	for _, re := range yearRes {
		if m := re.FindStringSubmatch(head); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				e.Year = year
				e.Suffix = m[2]
				break
			}
		}
	}

	e.Authors = parseAuthorCluster(head)
	return e
}

// ParseEntries lazily parses pre-segmented entry texts in list order,
// assigning 1-based ordinals.
func ParseEntries(texts []string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i, text := range texts {
			if !yield(Parse(i+1, text)) {
				return
			}
		}
	}
}

// ParseAll collects the parsed entry sequence.
func ParseAll(texts []string) []Entry {
	entries := make([]Entry, 0, len(texts))
	for e := range ParseEntries(texts) {
		entries = append(entries, e)
	}
	return entries
}

// parseAuthorCluster isolates the leading author cluster of an entry header
// and splits it into ordered name tokens. A trailing 等/et al. marker is
// kept as its own token so the key normalizer sees the truncation.
func parseAuthorCluster(head string) []string {
	var cluster string
	if m := clusterBeforeYearRe.FindStringSubmatch(head); m != nil {
		cluster = m[1]
	} else if m := clusterBeforePeriodRe.FindStringSubmatch(head); m != nil {
		cluster = m[1]
	} else {
		return nil
	}
	cluster = strings.TrimSpace(cluster)
	if cluster == "" {
		return nil
	}

	marker := ""
	if etAlRe.MatchString(cluster) {
		cluster = etAlRe.ReplaceAllString(cluster, "")
		marker = citation.EtAlMarker
	}
	if trimmed, ok := strings.CutSuffix(strings.TrimSpace(cluster), "等"); ok {
		cluster = trimmed
		marker = citation.DengMarker
	}

	tokens := citation.SplitAuthors(cluster)

	// Western entries often write "Smith, J."; fold bare initials into
	// the preceding surname token instead of treating them as authors.
	var authors []string
	for _, tok := range tokens {
		if tok == "等" {
			marker = citation.DengMarker
			continue
		}
		if initialRe.MatchString(tok) && len(authors) > 0 {
			authors[len(authors)-1] += " " + strings.ReplaceAll(tok, ".", "")
			continue
		}
		authors = append(authors, tok)
	}
	if len(authors) == 0 {
		return nil
	}
	if marker != "" {
		authors = append(authors, marker)
	}
	return authors
}
