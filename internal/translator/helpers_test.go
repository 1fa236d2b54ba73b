package translator

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newCaptureLogger returns a logger writing warnings to buf.
func newCaptureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// fakeBackend records calls and answers with the configured functions.
type fakeBackend struct {
	translate func(phrase string) (string, error)
	lookup    func(word string) ([]string, error)

	calls    []string
	callTime []time.Time
	langs    [][2]string
}

func (f *fakeBackend) Translate(_ context.Context, phrase, source, target string) (string, error) {
	f.calls = append(f.calls, phrase)
	f.callTime = append(f.callTime, time.Now())
	f.langs = append(f.langs, [2]string{source, target})
	if f.translate == nil {
		return phrase, nil
	}
	return f.translate(phrase)
}

func (f *fakeBackend) DictionaryLookup(_ context.Context, word, source, target string) ([]string, error) {
	f.calls = append(f.calls, word)
	f.callTime = append(f.callTime, time.Now())
	f.langs = append(f.langs, [2]string{source, target})
	if f.lookup == nil {
		return nil, nil
	}
	return f.lookup(word)
}

func nounTask(id string, lemmas ...string) domain.Task {
	task := domain.Task{ID: id, POS: domain.PartOfSpeechNoun}
	for i, l := range lemmas {
		task.Words = append(task.Words, domain.Lemma{Key: string(rune('1' + i)), Text: l})
	}
	return task
}
