package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
	"github.com/heartmarshall/wordnet-translator/internal/seeder/wordnet"
)

const defaultBatchSize = 500

// Config holds import pipeline settings.
type Config struct {
	BatchSize int
	DryRun    bool
	POS       []domain.PartOfSpeech
}

// PhaseResult holds the outcome of an import.
type PhaseResult struct {
	Parsed   int
	Written  int
	Skipped  int
	Stats    wordnet.Stats
	Duration time.Duration
}

// Pipeline parses a WordNet dump and writes its synsets in batches.
type Pipeline struct {
	log  *slog.Logger
	repo TaskWriter
	cfg  Config
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo TaskWriter, cfg Config) *Pipeline {
	return &Pipeline{
		log:  log.With("service", "seeder"),
		repo: repo,
		cfg:  cfg,
	}
}

// Run imports the GWN-LMF JSON file at path. In dry-run mode the file is
// parsed and counted but nothing is written.
func (p *Pipeline) Run(ctx context.Context, path string) (PhaseResult, error) {
	start := time.Now()
	p.log.InfoContext(ctx, "starting import", slog.String("path", path), slog.Bool("dry_run", p.cfg.DryRun))

	parsed, err := wordnet.ParseSynsets(path, wordnet.Filter{POS: p.cfg.POS})
	if err != nil {
		return PhaseResult{}, fmt.Errorf("seeder: parse wordnet: %w", err)
	}

	result := PhaseResult{
		Parsed:  len(parsed.Tasks),
		Skipped: parsed.Stats.NoLemmas + parsed.Stats.UnknownPOS + parsed.Stats.FilteredByPOS,
		Stats:   parsed.Stats,
	}
	p.log.InfoContext(ctx, "wordnet parsed",
		slog.Int("synsets", parsed.Stats.TotalSynsets),
		slog.Int("entries", parsed.Stats.TotalEntries),
		slog.Int("tasks", len(parsed.Tasks)),
		slog.Int("no_lemmas", parsed.Stats.NoLemmas),
		slog.Int("unknown_pos", parsed.Stats.UnknownPOS),
	)

	if p.cfg.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	written, err := batchProcess(parsed.Tasks, p.cfg.BatchSize, func(batch []domain.Task) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return p.repo.UpsertTasks(ctx, batch)
	})
	result.Written = written
	result.Duration = time.Since(start)
	if err != nil {
		p.log.WarnContext(ctx, "import failed",
			slog.Int("written", written),
			slog.String("error", err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return result, fmt.Errorf("seeder: upsert tasks: %w", err)
	}

	p.log.InfoContext(ctx, "import completed",
		slog.Int("written", result.Written),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// batchProcess splits items into batches and calls fn for each.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
