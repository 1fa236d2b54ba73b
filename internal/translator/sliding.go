package translator

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
	"github.com/heartmarshall/wordnet-translator/pkg/window"
)

// Options configure how SlidingWindow builds prompts.
type Options struct {
	// GroupBy is the number of lemmas per window.
	GroupBy int
	// AddOr puts the "or" word between the last two lemmas of a window.
	AddOr bool
	// AddQuotes wraps every lemma in double quotes.
	AddQuotes bool
	// CombineInOne sends all windows of a task as a single sample.
	CombineInOne bool
	// AddAuxWords prefixes lemmas with "to" (verbs) or "the" (nouns).
	AddAuxWords bool

	SourceLanguage string
	TargetLanguage string
}

// DefaultOptions returns the settings used for the bulk English→Ukrainian runs.
func DefaultOptions() Options {
	return Options{
		GroupBy:        3,
		AddOr:          true,
		AddQuotes:      true,
		CombineInOne:   true,
		AddAuxWords:    true,
		SourceLanguage: "en",
		TargetLanguage: "uk",
	}
}

// SlidingWindow groups the lemmas of a synset into overlapping windows so
// the translator sees each word next to its synonyms and the gloss.
type SlidingWindow struct {
	name         string
	backend      PhraseTranslator
	opts         Options
	source       Locale
	conjunctions []*regexp.Regexp
	log          *slog.Logger
}

// NewSlidingWindow creates a sliding window translator. name is the class
// part of the method id, e.g. "SlidingWindowBingTranslator".
func NewSlidingWindow(name string, backend PhraseTranslator, opts Options, logger *slog.Logger) *SlidingWindow {
	if opts.GroupBy < 1 {
		opts.GroupBy = 1
	}
	source := LocaleFor(opts.SourceLanguage)
	target := LocaleFor(opts.TargetLanguage)

	return &SlidingWindow{
		name:         name,
		backend:      backend,
		opts:         opts,
		source:       source,
		conjunctions: conjunctionPatterns(target, source),
		log:          logger.With("translator", name),
	}
}

// Options returns the configuration the translator was built with.
func (s *SlidingWindow) Options() Options {
	return s.opts
}

// MethodID encodes the class name and every prompt option.
// Booleans are written as True/False to match ids stored by earlier runs.
func (s *SlidingWindow) MethodID() string {
	return fmt.Sprintf("%s(group_by=%d,add_or=%s,add_quotes=%s,combine_in_one=%s,add_aux_words=%s)",
		s.name, s.opts.GroupBy,
		boolFlag(s.opts.AddOr), boolFlag(s.opts.AddQuotes),
		boolFlag(s.opts.CombineInOne), boolFlag(s.opts.AddAuxWords),
	)
}

func boolFlag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// GenerateSamples builds one prompt per window, or a single combined prompt.
func (s *SlidingWindow) GenerateSamples(task domain.Task) domain.SampleSet {
	words := task.LemmaTexts()

	if s.opts.AddAuxWords {
		if aux, ok := s.source.AuxWords[task.POS]; ok {
			for i, w := range words {
				words[i] = aux + " " + w
			}
		}
	}

	if s.opts.AddQuotes {
		for i, w := range words {
			words[i] = `"` + w + `"`
		}
	}

	var chunks [][]string
	if len(words) < s.opts.GroupBy {
		chunks = [][]string{words}
	} else {
		chunks = window.Sliding(words, s.opts.GroupBy)
	}

	definition, hasDefinition := task.FirstDefinition()
	result := domain.SampleSet{Samples: make([]string, 0, len(chunks))}

	for _, chunk := range chunks {
		result.TotalLemmas += len(chunk)

		lemmas := s.joinChunk(chunk)
		if hasDefinition {
			lemmas += ": " + definition
		}
		result.Samples = append(result.Samples, lemmas)
	}

	if s.opts.CombineInOne {
		result.Samples = []string{strings.Join(result.Samples, sampleJoiner)}
	}
	return result
}

func (s *SlidingWindow) joinChunk(chunk []string) string {
	if !s.opts.AddOr || len(chunk) < 2 {
		return strings.Join(chunk, ", ")
	}
	last := len(chunk) - 1
	return strings.Join(chunk[:last], ", ") + " " + s.source.Or + " " + chunk[last]
}

// Translate sends the samples to the phrase translator and parses the replies.
func (s *SlidingWindow) Translate(ctx context.Context, task domain.Task, sleep time.Duration) (*domain.Result, error) {
	sampled := s.GenerateSamples(task)

	raw, err := dispatch(ctx, task, sampled.Samples, sleep, func(ctx context.Context, sample string) (domain.RawResponse, error) {
		text, err := s.backend.Translate(ctx, sample, s.opts.SourceLanguage, s.opts.TargetLanguage)
		if err != nil {
			return domain.RawResponse{}, err
		}
		return domain.RawResponse{Text: text}, nil
	})
	if err != nil {
		return nil, err
	}

	return s.ParseResults(task, raw), nil
}

// ParseResults unescapes every reply, parses it and ranks the terms and
// definitions over all replies.
func (s *SlidingWindow) ParseResults(task domain.Task, raw []domain.RawResponse) *domain.Result {
	terms := domain.NewTally()
	definitions := domain.NewTally()
	result := &domain.Result{
		Type:            domain.ResultTypeTranslator,
		Raw:             make([]domain.ParsedResponse, 0, len(raw)),
		RawTranslations: make([]string, 0, len(raw)),
	}

	for _, r := range raw {
		answer := html.UnescapeString(r.Text)
		parsed := s.parseResponse(task, answer)

		terms.Add(parsed.AllTerms...)
		definitions.Add(parsed.AllDefinitions...)
		result.RawTranslations = append(result.RawTranslations, answer)
		result.Raw = append(result.Raw, parsed)
	}

	result.Terms = terms.MostCommon()
	result.Definitions = definitions.MostCommon()
	return result
}

// parseResponse applies the line heuristics to one unescaped reply. Lines
// that cannot be split are logged and dropped.
func (s *SlidingWindow) parseResponse(task domain.Task, text string) domain.ParsedResponse {
	parsed := domain.ParsedResponse{AllTerms: []string{}, AllDefinitions: []string{}}

	text = strings.ReplaceAll(text, LineBreak, "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		rawTerms, definition, ok := splitLine(line)
		if !ok {
			s.log.Warn("cannot find a colon or dash in the translated text",
				slog.String("task_id", task.ID), slog.String("line", line))
			continue
		}

		terms := strings.Split(rawTerms, ",")
		for i := range terms {
			terms[i] = strings.TrimSpace(terms[i])
		}

		if s.opts.AddOr {
			terms = s.splitConjunction(task, terms)
		}

		for _, term := range terms {
			if s.opts.AddQuotes {
				term = strings.Trim(term, QuoteChars)
			}
			if term == "" {
				continue
			}
			parsed.AllTerms = append(parsed.AllTerms, term)
		}
		parsed.AllDefinitions = append(parsed.AllDefinitions, strings.TrimSpace(definition))
	}

	return parsed
}

// splitConjunction separates the two lemmas the "or" word merged into the
// last term. The first conjunction that splits it wins.
func (s *SlidingWindow) splitConjunction(task domain.Task, terms []string) []string {
	last := len(terms) - 1
	for _, re := range s.conjunctions {
		parts := re.Split(terms[last], -1)
		if len(parts) < 2 {
			continue
		}
		out := append([]string(nil), terms[:last]...)
		for _, p := range parts {
			out = append(out, strings.Trim(p, ", "))
		}
		return out
	}

	if s.opts.GroupBy > 1 && len(task.Words) > 1 {
		s.log.Warn("cannot find 'or' in the last chunk", slog.String("task_id", task.ID))
	}
	return terms
}
