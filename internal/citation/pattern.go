package citation

import (
	"regexp"
	"strconv"
	"strings"
)

// yearPat matches a 4-digit publication year with an optional lowercase
// suffix letter. The character class tolerates common OCR substitutions
// (O for 0, l for 1, and so on); parseYear folds them back to digits.
const yearPat = `([0-9OoIilZzSsGgBbDd]{4})([a-z])?`

// EtAlMarker and DengMarker are the canonical author-truncation tokens
// appended to the author list when a citation elides trailing authors.
const (
	EtAlMarker = "et al."
	DengMarker = "等"
)

// recognizer pairs a citation style with its matcher and extraction plan.
// The plan returns false when a span looks citation-like but its fields
// cannot be parsed; such spans are consumed and skipped silently.
type recognizer struct {
	style Style
	re    *regexp.Regexp
	parse func(groups []string, raw string, pos int) (Citation, bool)
}

// patterns is the ordered recognizer list. More specific patterns come
// first: author-year variants must win over bare numeric brackets when
// both could claim a span at the same position.
var patterns = []recognizer{
	{
		// Parenthetical Chinese: （张三，2020） or （李三希等，2023）
		style: StyleAuthorYearZh,
		re: regexp.MustCompile(`[（(]\s*([\p{Han}][\p{Han}·]{0,9}(?:[，,、][\p{Han}][\p{Han}·]{0,9})*)\s*(等)?\s*[，,]\s*` + yearPat + `\s*[）)]`),
		parse: parseAuthorYear(StyleAuthorYearZh, DengMarker),
	},
	{
		// Narrative Chinese: 张三（2020） or 汪寿阳等（2015）
		style: StyleAuthorYearZh,
		re:    regexp.MustCompile(`([\p{Han}][\p{Han}·]{1,3})\s*(等)?\s*[（(]\s*` + yearPat + `\s*[）)]`),
		parse: parseAuthorYear(StyleAuthorYearZh, DengMarker),
	},
	{
		// Narrative et al.: Smith et al. (2019)
		style: StyleAuthorYearEn,
		re:    regexp.MustCompile(`\b([A-Z][A-Za-z'’\-]+)(\s+et\s+al\.?)\s*[（(]\s*` + yearPat + `\s*[）)]`),
		parse: parseAuthorYear(StyleAuthorYearEn, EtAlMarker),
	},
	{
		// Parenthetical Western: (Smith, 2019), (Smith & Jones, 2020),
		// (Smith et al., 2021)
		style: StyleAuthorYearEn,
		re: regexp.MustCompile(`[（(]\s*([A-Z][A-Za-z'’\-]+(?:\s*(?:[，,]|&|\band\b)\s*[A-Z][A-Za-z'’\-]+)*)(\s+et\s+al\.?)?\s*[，,]\s*` + yearPat + `\s*[）)]`),
		parse: parseAuthorYear(StyleAuthorYearEn, EtAlMarker),
	},
	{
		// Narrative Western: Felson (1978), Johnson & Brown（2021）
		style: StyleAuthorYearEn,
		re:    regexp.MustCompile(`\b([A-Z][A-Za-z'’\-]+(?:\s*(?:&|\band\b)\s*[A-Z][A-Za-z'’\-]+)*)()\s*[（(]\s*` + yearPat + `\s*[）)]`),
		parse: parseAuthorYear(StyleAuthorYearEn, EtAlMarker),
	},
	{
		// Index range: [3-5]
		style: StyleNumericRange,
		re:    regexp.MustCompile(`\[(\d{1,3})\s*[-–—~]\s*(\d{1,3})\]`),
		parse: parseNumericRange,
	},
	{
		// Single index: [5]
		style: StyleNumeric,
		re:    regexp.MustCompile(`\[(\d{1,3})\]`),
		parse: parseNumeric,
	},
}

// parseAuthorYear builds an extraction plan for author-year recognizers.
// Group layout: 1 author cluster, 2 truncation marker, 3 year, 4 suffix.
func parseAuthorYear(style Style, marker string) func([]string, string, int) (Citation, bool) {
	return func(groups []string, raw string, pos int) (Citation, bool) {
		year, ok := parseYear(groups[3])
		if !ok {
			return Citation{}, false
		}
		hasMarker := strings.TrimSpace(groups[2]) != ""
		authors := SplitAuthors(groups[1])
		if len(authors) == 0 {
			return Citation{}, false
		}
		// The Han character class can swallow a trailing 等 into the last
		// author token; peel it back off so truncation is always visible.
		if last := authors[len(authors)-1]; marker == DengMarker {
			if trimmed, ok := strings.CutSuffix(last, DengMarker); ok && trimmed != "" {
				authors[len(authors)-1] = trimmed
				hasMarker = true
			}
		}
		if hasMarker {
			authors = append(authors, marker)
		}
		return Citation{
			RawText:  raw,
			Position: pos,
			Authors:  authors,
			Year:     year,
			Suffix:   groups[4],
			Style:    style,
		}, true
	}
}

func parseNumeric(groups []string, raw string, pos int) (Citation, bool) {
	idx, err := strconv.Atoi(groups[1])
	if err != nil || idx <= 0 {
		return Citation{}, false
	}
	return Citation{RawText: raw, Position: pos, Index: idx, Style: StyleNumeric}, true
}

func parseNumericRange(groups []string, raw string, pos int) (Citation, bool) {
	lo, err1 := strconv.Atoi(groups[1])
	hi, err2 := strconv.Atoi(groups[2])
	if err1 != nil || err2 != nil || lo <= 0 || hi < lo {
		return Citation{}, false
	}
	return Citation{RawText: raw, Position: pos, Index: lo, IndexEnd: hi, Style: StyleNumericRange}, true
}

// authorSep splits an author cluster on Chinese/Western commas, the
// enumeration comma, ampersands, and the word "and".
var authorSep = regexp.MustCompile(`\s*(?:[，,、&]|\band\b)\s*`)

// SplitAuthors splits a raw author cluster into ordered name tokens.
func SplitAuthors(cluster string) []string {
	var out []string
	for _, part := range authorSep.Split(cluster, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ocrDigit maps characters commonly misread by OCR onto the digit they
// stand in for.
var ocrDigit = map[byte]byte{
	'O': '0', 'o': '0', 'D': '0', 'd': '0',
	'I': '1', 'i': '1', 'l': '1',
	'Z': '2', 'z': '2',
	'S': '5', 's': '5',
	'G': '6', 'g': '6',
	'B': '8', 'b': '8',
}

// parseYear converts a 4-character year, folding OCR-confusable letters
// back to digits.
func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	b := []byte(s)
	for i, c := range b {
		if c >= '0' && c <= '9' {
			continue
		}
		d, ok := ocrDigit[c]
		if !ok {
			return 0, false
		}
		b[i] = d
	}
	year, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, false
	}
	return year, true
}
