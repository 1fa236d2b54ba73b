package translator

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// Locale holds the language-specific words used to build and parse prompts.
type Locale struct {
	Code string
	// Or joins the last two lemmas of a window in generated prompts.
	Or string
	// Conjunctions are "or"-equivalents tried, in order, when splitting
	// translated terms that were merged by the conjunction.
	Conjunctions []string
	// AuxWords prefix lemmas of the given part of speech in prompts.
	AuxWords map[domain.PartOfSpeech]string
}

// Locales is keyed by ISO 639-1 code. Adding a language only needs an entry here.
var Locales = map[string]Locale{
	"en": {
		Code:         "en",
		Or:           "or",
		Conjunctions: []string{"or"},
		AuxWords: map[domain.PartOfSpeech]string{
			domain.PartOfSpeechVerb: "to",
			domain.PartOfSpeechNoun: "the",
		},
	},
	"uk": {
		Code:         "uk",
		Or:           "або",
		Conjunctions: []string{"чи то", "чи", "або", "альбо"},
	},
}

// Separators split a translated line into terms and definition.
// The first separator contained in the line wins, in table order.
var Separators = []string{":", "–", "-", "—"}

// QuoteChars are trimmed from terms when prompts quote the lemmas.
const QuoteChars = "\"'«»“”„"

const (
	// LineBreak separates windows inside a combined sample.
	LineBreak = "<br/>"
	// sampleJoiner is what combined samples are actually joined with.
	sampleJoiner = LineBreak + "\n\n"
	defaultOr    = "or"
)

// LocaleFor returns the locale registered for code, or a bare locale that
// only knows the English conjunction.
func LocaleFor(code string) Locale {
	if l, ok := Locales[code]; ok {
		return l
	}
	return Locale{Code: code, Or: defaultOr}
}

// conjunctionPatterns compiles the split patterns for parsing replies in
// target that were generated from source: target words first, then source.
func conjunctionPatterns(target, source Locale) []*regexp.Regexp {
	seen := make(map[string]bool)
	var patterns []*regexp.Regexp
	for _, words := range [][]string{target.Conjunctions, source.Conjunctions} {
		for _, w := range words {
			key := strings.ToLower(w)
			if seen[key] {
				continue
			}
			seen[key] = true
			patterns = append(patterns, regexp.MustCompile(`(?i)[,\s\p{Zs}]+`+regexp.QuoteMeta(w)+`[,\s\p{Zs}]+`))
		}
	}
	return patterns
}

// splitLine cuts line at the first separator from Separators that it contains.
func splitLine(line string) (terms, definition string, ok bool) {
	for _, sep := range Separators {
		if before, after, found := strings.Cut(line, sep); found {
			return before, after, true
		}
	}
	return "", "", false
}
