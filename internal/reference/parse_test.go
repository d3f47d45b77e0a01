package reference

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantAuthors []string
		wantYear    int
		wantSuffix  string
	}{
		{
			name:        "chinese entry",
			text:        "张三（2020）《中国经济研究》，北京大学出版社。",
			wantAuthors: []string{"张三"},
			wantYear:    2020,
		},
		{
			name:        "chinese entry with bracket ordinal",
			text:        "[3] 张三（2020）《中国经济研究》。",
			wantAuthors: []string{"张三"},
			wantYear:    2020,
		},
		{
			name:        "chinese multi author with deng",
			text:        "李三希、张明等（2023）《数字经济》。",
			wantAuthors: []string{"李三希", "张明", "等"},
			wantYear:    2023,
		},
		{
			name:        "chinese gbt style",
			text:        "汪寿阳，等．供应链金融研究［Ｊ］．管理科学学报，2015",
			wantAuthors: []string{"汪寿阳", "等"},
			wantYear:    2015,
		},
		{
			name:        "western entry with initials",
			text:        "Smith, J. (2018). The theory of everything. Journal of Things.",
			wantAuthors: []string{"Smith J"},
			wantYear:    2018,
		},
		{
			name:        "western two authors",
			text:        "Smith, J., & Jones, K. (2020). Collaborative work.",
			wantAuthors: []string{"Smith J", "Jones K"},
			wantYear:    2020,
		},
		{
			name:        "western et al",
			text:        "Smith, J., et al. (2021). Many hands.",
			wantAuthors: []string{"Smith J", "et al."},
			wantYear:    2021,
		},
		{
			name:        "year with suffix",
			text:        "张三（2020a）《研究一》。",
			wantAuthors: []string{"张三"},
			wantYear:    2020,
			wantSuffix:  "a",
		},
		{
			name:        "year after comma",
			text:        "Ohanian, R. Construction of a scale, 1990",
			wantAuthors: []string{"Ohanian R"},
			wantYear:    1990,
		},
		{
			name: "unparseable header keeps zero fields",
			text: "……………………",
		},
		{
			name: "empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Parse(7, tt.text)
			if e.Ordinal != 7 {
				t.Errorf("Ordinal = %d, want 7", e.Ordinal)
			}
			if e.RawText != tt.text {
				t.Errorf("RawText = %q, want %q", e.RawText, tt.text)
			}
			if !reflect.DeepEqual(e.Authors, tt.wantAuthors) {
				t.Errorf("Authors = %v, want %v", e.Authors, tt.wantAuthors)
			}
			if e.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", e.Year, tt.wantYear)
			}
			if e.Suffix != tt.wantSuffix {
				t.Errorf("Suffix = %q, want %q", e.Suffix, tt.wantSuffix)
			}
		})
	}
}

func TestParsedPredicate(t *testing.T) {
	ok := Parse(1, "张三（2020）《研究》。")
	if !ok.Parsed() {
		t.Errorf("expected parsed entry, got %+v", ok)
	}
	bad := Parse(2, "！！！")
	if bad.Parsed() {
		t.Errorf("expected unparsed entry, got %+v", bad)
	}
}

func TestParseAllOrdinals(t *testing.T) {
	entries := ParseAll([]string{
		"张三（2020）《甲》。",
		"李四（2021）《乙》。",
		"王五（2022）《丙》。",
	})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Ordinal != i+1 {
			t.Errorf("entry %d ordinal = %d, want %d", i, e.Ordinal, i+1)
		}
	}
}

func TestParseEntriesEarlyStop(t *testing.T) {
	texts := []string{"张三（2020）。", "李四（2021）。"}
	n := 0
	for range ParseEntries(texts) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d entries, want 1", n)
	}
}
