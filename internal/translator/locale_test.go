package translator

import (
	"testing"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

func TestSplitLine_SeparatorPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		wantTerms string
		wantDef   string
		wantOK    bool
	}{
		{"colon", "пес, собака: тварина", "пес, собака", " тварина", true},
		{"colon beats earlier dash", "пес-собака: тварина", "пес-собака", " тварина", true},
		{"en dash", "пес – тварина", "пес ", " тварина", true},
		{"hyphen", "пес - тварина - друг", "пес ", " тварина - друг", true},
		{"em dash", "пес — тварина", "пес ", " тварина", true},
		{"no separator", "просто текст", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			terms, def, ok := splitLine(tt.line)
			if ok != tt.wantOK || terms != tt.wantTerms || def != tt.wantDef {
				t.Errorf("splitLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, terms, def, ok, tt.wantTerms, tt.wantDef, tt.wantOK)
			}
		})
	}
}

func TestConjunctionPatterns_Order(t *testing.T) {
	t.Parallel()

	patterns := conjunctionPatterns(LocaleFor("uk"), LocaleFor("en"))
	want := []string{"чи то", "чи", "або", "альбо", "or"}
	if len(patterns) != len(want) {
		t.Fatalf("got %d patterns, want %d", len(patterns), len(want))
	}
	// "чи то" must be tried before "чи" so the longer form is split whole.
	if got := patterns[0].Split("пес чи то собака", -1); len(got) != 2 || got[1] != "собака" {
		t.Errorf("first pattern split = %q", got)
	}
}

func TestConjunctionPatterns_CaseInsensitiveAndBounded(t *testing.T) {
	t.Parallel()

	patterns := conjunctionPatterns(LocaleFor("uk"), LocaleFor("en"))
	or := patterns[len(patterns)-1]

	if got := or.Split("dog OR hound", -1); len(got) != 2 {
		t.Errorf("case-insensitive split failed: %q", got)
	}
	if got := or.Split("order", -1); len(got) != 1 {
		t.Errorf("conjunction inside a word must not split: %q", got)
	}
}

func TestLocaleFor_Unknown(t *testing.T) {
	t.Parallel()

	l := LocaleFor("xx")
	if l.Code != "xx" || l.Or != "or" || len(l.Conjunctions) != 0 {
		t.Errorf("LocaleFor(xx) = %+v", l)
	}
	if LocaleFor("en").AuxWords[domain.PartOfSpeechVerb] != "to" {
		t.Error("english verbs should use the 'to' prefix")
	}
}
