package translator

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// Dictionary looks up every lemma on its own and ranks the returned
// candidates by how many lemmas produced them. It yields no definitions.
type Dictionary struct {
	name           string
	backend        DictionaryLookup
	sourceLanguage string
	targetLanguage string
	log            *slog.Logger
}

// NewDictionary creates a dictionary lookup translator.
func NewDictionary(name string, backend DictionaryLookup, sourceLanguage, targetLanguage string, logger *slog.Logger) *Dictionary {
	return &Dictionary{
		name:           name,
		backend:        backend,
		sourceLanguage: sourceLanguage,
		targetLanguage: targetLanguage,
		log:            logger.With("translator", name),
	}
}

// MethodID is the bare class name: the translator has nothing to configure.
func (d *Dictionary) MethodID() string {
	return d.name + "()"
}

// GenerateSamples returns the lemmas unchanged.
func (d *Dictionary) GenerateSamples(task domain.Task) domain.SampleSet {
	return domain.SampleSet{
		Samples:     task.LemmaTexts(),
		TotalLemmas: len(task.Words),
	}
}

// Translate looks up each lemma in order and tallies the candidates.
func (d *Dictionary) Translate(ctx context.Context, task domain.Task, sleep time.Duration) (*domain.Result, error) {
	sampled := d.GenerateSamples(task)

	raw, err := dispatch(ctx, task, sampled.Samples, sleep, func(ctx context.Context, word string) (domain.RawResponse, error) {
		candidates, err := d.backend.DictionaryLookup(ctx, word, d.sourceLanguage, d.targetLanguage)
		if err != nil {
			return domain.RawResponse{}, err
		}
		return domain.RawResponse{Candidates: candidates}, nil
	})
	if err != nil {
		return nil, err
	}

	return d.ParseResults(task, raw), nil
}

// ParseResults counts every candidate of every lookup. Empty lookups add nothing.
func (d *Dictionary) ParseResults(task domain.Task, raw []domain.RawResponse) *domain.Result {
	terms := domain.NewTally()
	result := &domain.Result{
		Type:        domain.ResultTypeDictionary,
		Raw:         make([]domain.ParsedResponse, 0, len(raw)),
		Definitions: []domain.TermCount{},
	}

	for i, r := range raw {
		if len(r.Candidates) == 0 {
			d.log.Debug("no dictionary candidates", slog.String("task_id", task.ID), slog.Int("sample", i))
		}
		terms.Add(r.Candidates...)
		result.Raw = append(result.Raw, domain.ParsedResponse{
			AllTerms:       append([]string{}, r.Candidates...),
			AllDefinitions: []string{},
		})
	}

	result.Terms = terms.MostCommon()
	return result
}
