package google

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), "", srv.URL+"/", newTestLogger(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestClient_Translate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.FormValue("q"); got != `"the dog" or "the hound"` {
			t.Errorf("q = %q", got)
		}
		if got := r.FormValue("target"); got != "uk" {
			t.Errorf("target = %q", got)
		}
		if got := r.FormValue("source"); got != "en" {
			t.Errorf("source = %q", got)
		}
		if got := r.FormValue("format"); got != "html" {
			t.Errorf("format = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"&quot;пес&quot; або &quot;гончак&quot;"}]}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv).Translate(context.Background(), `"the dog" or "the hound"`, "en", "uk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "&quot;пес&quot; або &quot;гончак&quot;" {
		t.Errorf("Translate() = %q", got)
	}
}

func TestClient_Translate_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded","errors":[{"reason":"dailyLimitExceeded"}]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Translate(context.Background(), "dog", "en", "uk")
	if !errors.Is(err, domain.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
	var trErr *domain.TranslationError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected *TranslationError, got %T", err)
	}
	if trErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", trErr.StatusCode)
	}
	if trErr.Provider != "google" {
		t.Errorf("Provider = %q", trErr.Provider)
	}
}

func TestClient_Translate_Empty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Translate(context.Background(), "dog", "en", "uk")
	if !errors.Is(err, domain.ErrTranslation) {
		t.Errorf("expected ErrTranslation, got %v", err)
	}
}
