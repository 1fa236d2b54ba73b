package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/wordnet-translator/internal/config"
	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

var (
	once      sync.Once
	sharedURI string
	initErr   error
)

func startMongo() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}
	return fmt.Sprintf("mongodb://%s:%s/", host, port.Port()), nil
}

// setupStore opens a store on a fresh collection of the shared container.
func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}

	once.Do(func() {
		sharedURI, initErr = startMongo()
	})
	if initErr != nil {
		t.Fatalf("failed to start mongo: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.MongoConfig{
		URI:            sharedURI,
		Database:       "wordnet_test",
		Collection:     "tasks_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		ConnectTimeout: 10 * time.Second,
	}
	store, err := Open(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.coll.Drop(context.Background())
		_ = store.Close(context.Background())
	})
	return store
}

const method = "SlidingWindowBingTranslator(group_by=3,add_or=True,add_quotes=True,combine_in_one=True,add_aux_words=True)"

func seedTasks(t *testing.T, store *Store) {
	t.Helper()
	tasks := []domain.Task{
		{
			ID:         "dog.n.01",
			POS:        domain.PartOfSpeechNoun,
			Words:      []domain.Lemma{{Key: "1", Text: "dog"}, {Key: "2", Text: "domestic dog"}, {Key: "3", Text: "Canis familiaris"}},
			Definition: []string{"a member of the genus Canis"},
		},
		{
			ID:    "run.v.01",
			POS:   domain.PartOfSpeechVerb,
			Words: []domain.Lemma{{Key: "1", Text: "run"}},
		},
		{
			ID:         "fast.a.01",
			POS:        domain.PartOfSpeechAdjective,
			Words:      []domain.Lemma{{Key: "1", Text: "fast"}},
			Definition: []string{"acting or moving quickly"},
		},
	}
	n, err := store.UpsertTasks(context.Background(), tasks)
	if err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}
	if n != 3 {
		t.Fatalf("UpsertTasks = %d, want 3", n)
	}
}

func TestStore_UpsertAndGet(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	seedTasks(t, store)
	ctx := context.Background()

	got, err := store.Get(ctx, "dog.n.01")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := []string{"dog", "domestic dog", "Canis familiaris"}
	if strings.Join(got.LemmaTexts(), "|") != strings.Join(want, "|") {
		t.Errorf("lemmas = %v, want %v (order preserved)", got.LemmaTexts(), want)
	}
	if got.Words[2].Key != "3" {
		t.Errorf("Words[2].Key = %q, want 3", got.Words[2].Key)
	}
	if got.POS != domain.PartOfSpeechNoun {
		t.Errorf("POS = %q", got.POS)
	}

	run, err := store.Get(ctx, "run.v.01")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(run.Definition) != 0 {
		t.Errorf("Definition = %#v, want empty", run.Definition)
	}

	if _, err := store.Get(ctx, "missing.n.01"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_UpsertKeepsResults(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	seedTasks(t, store)
	ctx := context.Background()

	result := &domain.Result{Type: domain.ResultTypeTranslator, Terms: []domain.TermCount{{Term: "пес", Count: 2}}}
	if err := store.SaveResult(ctx, "dog.n.01", method, result); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	n, err := store.UpsertTasks(ctx, []domain.Task{{
		ID:    "dog.n.01",
		POS:   domain.PartOfSpeechNoun,
		Words: []domain.Lemma{{Key: "1", Text: "dog"}},
	}})
	if err != nil || n != 1 {
		t.Fatalf("UpsertTasks = %d, %v", n, err)
	}

	got, err := store.GetResult(ctx, "dog.n.01", method)
	if err != nil {
		t.Fatalf("GetResult after re-import: %v", err)
	}
	if top, _ := got.TopTerm(); top != "пес" {
		t.Errorf("TopTerm = %q", top)
	}
}

func TestStore_UpsertRejectsInvalid(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	_, err := store.UpsertTasks(context.Background(), []domain.Task{{ID: "x", POS: "q"}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	seedTasks(t, store)
	ctx := context.Background()

	pending, err := store.ListPending(ctx, method, 0)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}
	if pending[0].ID != "dog.n.01" || pending[1].ID != "fast.a.01" || pending[2].ID != "run.v.01" {
		t.Errorf("pending not ordered by id: %s %s %s", pending[0].ID, pending[1].ID, pending[2].ID)
	}

	limited, err := store.ListPending(ctx, method, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("ListPending(limit 2) = %d, %v", len(limited), err)
	}

	result := &domain.Result{
		Type:            domain.ResultTypeTranslator,
		Raw:             []domain.ParsedResponse{{AllTerms: []string{"пес", "собака"}, AllDefinitions: []string{"тварина"}}},
		Terms:           []domain.TermCount{{Term: "пес", Count: 1}, {Term: "собака", Count: 1}},
		Definitions:     []domain.TermCount{{Term: "тварина", Count: 1}},
		RawTranslations: []string{"«пес» або «собака»: тварина"},
	}
	if err := store.SaveResult(ctx, "dog.n.01", method, result); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if err := store.MarkFailed(ctx, "run.v.01", method, "bing: boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	stats, err := store.Stats(ctx, method)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats != (domain.TaskStats{Total: 3, Translated: 1, Failed: 1, Pending: 1}) {
		t.Errorf("Stats = %+v", stats)
	}

	pending, err = store.ListPending(ctx, method, 0)
	if err != nil || len(pending) != 1 || pending[0].ID != "fast.a.01" {
		t.Fatalf("ListPending after save = %v, %v", pending, err)
	}

	// Other methods still see every task.
	other, err := store.ListPending(ctx, "DictionaryBingTranslator()", 0)
	if err != nil || len(other) != 3 {
		t.Fatalf("ListPending(other method) = %d, %v", len(other), err)
	}

	got, err := store.GetResult(ctx, "dog.n.01", method)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if got.Type != domain.ResultTypeTranslator || len(got.Terms) != 2 || got.Raw[0].AllDefinitions[0] != "тварина" {
		t.Errorf("GetResult = %+v", got)
	}
	if _, err := store.GetResult(ctx, "fast.a.01", method); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetResult(pending) error = %v, want ErrNotFound", err)
	}

	n, err := store.RetryFailed(ctx, method)
	if err != nil || n != 1 {
		t.Fatalf("RetryFailed = %d, %v", n, err)
	}
	stats, _ = store.Stats(ctx, method)
	if stats.Failed != 0 || stats.Pending != 2 {
		t.Errorf("Stats after retry = %+v", stats)
	}
}

func TestStore_SaveResultClearsFailure(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	seedTasks(t, store)
	ctx := context.Background()

	if err := store.MarkFailed(ctx, "fast.a.01", method, "timeout"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := store.SaveResult(ctx, "fast.a.01", method, &domain.Result{Type: domain.ResultTypeTranslator}); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	stats, err := store.Stats(ctx, method)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Failed != 0 || stats.Translated != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestStore_UnknownTask(t *testing.T) {
	t.Parallel()
	store := setupStore(t)
	ctx := context.Background()

	if err := store.SaveResult(ctx, "nope", method, &domain.Result{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("SaveResult error = %v, want ErrNotFound", err)
	}
	if err := store.MarkFailed(ctx, "nope", method, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MarkFailed error = %v, want ErrNotFound", err)
	}
}

func TestFieldPaths(t *testing.T) {
	t.Parallel()

	results, failures, err := fieldPaths("DictionaryBingTranslator()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != "results.DictionaryBingTranslator()" || failures != "failures.DictionaryBingTranslator()" {
		t.Errorf("paths = %q, %q", results, failures)
	}

	for _, bad := range []string{"", "a.b", "$set"} {
		if _, _, err := fieldPaths(bad); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("fieldPaths(%q) error = %v, want ErrValidation", bad, err)
		}
	}
}
