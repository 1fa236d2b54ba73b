package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// An identity backend returns every prompt unchanged, so parsing the reply
// must give back the lemmas that went into it.
func TestSlidingWindow_IdentityRoundTrip(t *testing.T) {
	t.Parallel()

	task := nounTask("dog.n.01", "dog", "hound")
	task.Definition = []string{"a domesticated carnivore"}

	opts := DefaultOptions()
	opts.AddAuxWords = false
	s := NewSlidingWindow("x", &fakeBackend{}, opts, newTestLogger())

	res, err := s.Translate(context.Background(), task, 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.TermCount{{"dog", 1}, {"hound", 1}}, res.Terms)
	assert.Equal(t, []domain.TermCount{{"a domesticated carnivore", 1}}, res.Definitions)
}

func TestSlidingWindow_IdentityRoundTrip_AuxWordsStay(t *testing.T) {
	t.Parallel()

	task := nounTask("dog.n.01", "dog", "hound")
	task.Definition = []string{"a domesticated carnivore"}

	s := NewSlidingWindow("x", &fakeBackend{}, DefaultOptions(), newTestLogger())

	res, err := s.Translate(context.Background(), task, 0)
	require.NoError(t, err)

	// Aux prefixes are part of the prompt and are not stripped on parse.
	assert.Equal(t, []domain.TermCount{{"the dog", 1}, {"the hound", 1}}, res.Terms)
}

func TestSlidingWindow_IdentityRoundTrip_Windows(t *testing.T) {
	t.Parallel()

	task := nounTask("x", "a", "b", "c", "d")
	task.Definition = []string{"gloss"}

	opts := DefaultOptions()
	opts.AddAuxWords = false
	s := NewSlidingWindow("x", &fakeBackend{}, opts, newTestLogger())

	res, err := s.Translate(context.Background(), task, 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.TermCount{{"b", 2}, {"c", 2}, {"a", 1}, {"d", 1}}, res.Terms)
	assert.Equal(t, []domain.TermCount{{"gloss", 2}}, res.Definitions)
}
