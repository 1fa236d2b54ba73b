// Package translate holds offline translation backends.
package translate

import "context"

// Echo returns every phrase unchanged. It stands in for the real services
// on dry runs: prompts and parsing are exercised without network calls.
type Echo struct{}

// NewEcho creates an identity backend.
func NewEcho() *Echo { return &Echo{} }

// Translate returns phrase as is.
func (e *Echo) Translate(ctx context.Context, phrase, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return phrase, nil
}

// DictionaryLookup offers the word itself as its only candidate.
func (e *Echo) DictionaryLookup(ctx context.Context, word, _, _ string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{word}, nil
}
