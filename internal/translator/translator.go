// Package translator turns synset tasks into prompts for external translation
// services and parses the replies back into ranked terms and definitions.
package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// Translator is implemented by every translation method.
type Translator interface {
	// GenerateSamples builds the prompts sent for task. Deterministic.
	GenerateSamples(task domain.Task) domain.SampleSet
	// Translate sends every sample in order, pausing sleep between calls,
	// and parses the replies. The first failed call aborts the task.
	Translate(ctx context.Context, task domain.Task, sleep time.Duration) (*domain.Result, error)
	// ParseResults turns raw replies into an aggregated Result.
	ParseResults(task domain.Task, raw []domain.RawResponse) *domain.Result
	// MethodID identifies the translator together with its configuration.
	MethodID() string
}

// PhraseTranslator translates free text.
type PhraseTranslator interface {
	Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error)
}

// DictionaryLookup returns candidate translations of a single word.
type DictionaryLookup interface {
	DictionaryLookup(ctx context.Context, word, sourceLang, targetLang string) ([]string, error)
}

// dispatch sends samples one at a time, sleeping between consecutive calls.
func dispatch(
	ctx context.Context,
	task domain.Task,
	samples []string,
	sleep time.Duration,
	call func(ctx context.Context, sample string) (domain.RawResponse, error),
) ([]domain.RawResponse, error) {
	raw := make([]domain.RawResponse, 0, len(samples))
	for i, sample := range samples {
		if i > 0 {
			if err := pause(ctx, sleep); err != nil {
				return nil, fmt.Errorf("task %s: %w", task.ID, err)
			}
		}
		resp, err := call(ctx, sample)
		if err != nil {
			return nil, fmt.Errorf("task %s sample %d: %w", task.ID, i, err)
		}
		raw = append(raw, resp)
	}
	return raw, nil
}

// pause blocks for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
