package translate

import (
	"context"
	"errors"
	"testing"
)

func TestEcho_Translate(t *testing.T) {
	t.Parallel()

	e := NewEcho()
	phrase := `"the dog" or "the hound": a domesticated carnivore<br/>` + "\n\n" + `"to run"`

	got, err := e.Translate(context.Background(), phrase, "en", "uk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != phrase {
		t.Errorf("Translate() = %q, want input unchanged", got)
	}
}

func TestEcho_DictionaryLookup(t *testing.T) {
	t.Parallel()

	got, err := NewEcho().DictionaryLookup(context.Background(), "dog", "en", "uk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "dog" {
		t.Errorf("DictionaryLookup() = %v, want [dog]", got)
	}
}

func TestEcho_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewEcho().Translate(ctx, "dog", "en", "uk"); !errors.Is(err, context.Canceled) {
		t.Errorf("Translate() error = %v, want context.Canceled", err)
	}
	if _, err := NewEcho().DictionaryLookup(ctx, "dog", "en", "uk"); !errors.Is(err, context.Canceled) {
		t.Errorf("DictionaryLookup() error = %v, want context.Canceled", err)
	}
}
