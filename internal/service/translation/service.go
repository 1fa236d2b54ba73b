// Package translation drives translator runs over the task store.
package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
	"github.com/heartmarshall/wordnet-translator/internal/translator"
	"github.com/heartmarshall/wordnet-translator/pkg/ctxutil"
)

type taskStore interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
	GetResult(ctx context.Context, id, methodID string) (*domain.Result, error)
	ListPending(ctx context.Context, methodID string, limit int) ([]domain.Task, error)
	SaveResult(ctx context.Context, taskID, methodID string, result *domain.Result) error
	MarkFailed(ctx context.Context, taskID, methodID, msg string) error
	RetryFailed(ctx context.Context, methodID string) (int, error)
	Stats(ctx context.Context, methodID string) (domain.TaskStats, error)
}

// Progress is notified after every finished task.
type Progress interface {
	Add(n int) error
}

// RunResult summarises a translate run.
type RunResult struct {
	RunID      uuid.UUID
	Total      int
	Translated int
	Failed     int
	Duration   time.Duration
}

// Service translates pending tasks with a single translator.
type Service struct {
	log        *slog.Logger
	store      taskStore
	translator translator.Translator
	sleep      time.Duration
}

// NewService creates a new translation service.
func NewService(logger *slog.Logger, store taskStore, t translator.Translator, sleep time.Duration) *Service {
	return &Service{
		log:        logger.With("service", "translation"),
		store:      store,
		translator: t,
		sleep:      sleep,
	}
}

// MethodID is the id results are stored under.
func (s *Service) MethodID() string {
	return s.translator.MethodID()
}

// Sleep is the pause between consecutive service calls.
func (s *Service) Sleep() time.Duration {
	return s.sleep
}

// Run translates up to limit pending tasks, one at a time. A task that fails
// is marked failed and the run moves on. Cancelling ctx stops the run after
// the task in flight; the partial result is returned with the context error.
// progress may be nil.
func (s *Service) Run(ctx context.Context, limit int, progress Progress) (RunResult, error) {
	methodID := s.translator.MethodID()
	result := RunResult{RunID: uuid.New()}
	ctx = ctxutil.WithMethodID(ctxutil.WithRunID(ctx, result.RunID), methodID)
	log := s.log.With(slog.String("run_id", result.RunID.String()), slog.String("method_id", methodID))

	start := time.Now()
	tasks, err := s.store.ListPending(ctx, methodID, limit)
	if err != nil {
		return result, fmt.Errorf("translation: list pending: %w", err)
	}
	result.Total = len(tasks)
	log.InfoContext(ctx, "run started", slog.Int("tasks", len(tasks)), slog.Int("limit", limit), slog.Duration("sleep", s.sleep))

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, log, result, start, err)
		}

		res, err := s.translator.Translate(ctx, task, s.sleep)
		switch {
		case err == nil:
			if err := s.store.SaveResult(ctx, task.ID, methodID, res); err != nil {
				return s.finish(ctx, log, result, start, fmt.Errorf("translation: save result %s: %w", task.ID, err))
			}
			result.Translated++
			log.DebugContext(ctx, "task translated", slog.String("task_id", task.ID), slog.Int("terms", len(res.Terms)))
		case ctx.Err() != nil:
			return s.finish(ctx, log, result, start, ctx.Err())
		default:
			result.Failed++
			log.WarnContext(ctx, "task failed", slog.String("task_id", task.ID), slog.String("error", err.Error()))
			if err := s.store.MarkFailed(ctx, task.ID, methodID, err.Error()); err != nil {
				return s.finish(ctx, log, result, start, fmt.Errorf("translation: mark failed %s: %w", task.ID, err))
			}
		}

		if progress != nil {
			_ = progress.Add(1)
		}
	}

	return s.finish(ctx, log, result, start, nil)
}

func (s *Service) finish(ctx context.Context, log *slog.Logger, result RunResult, start time.Time, err error) (RunResult, error) {
	result.Duration = time.Since(start)
	attrs := []any{
		slog.Int("total", result.Total),
		slog.Int("translated", result.Translated),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", result.Duration),
	}
	if err != nil {
		log.WarnContext(ctx, "run stopped", append(attrs, slog.String("error", err.Error()))...)
		return result, err
	}
	log.InfoContext(ctx, "run completed", attrs...)
	return result, nil
}

// Estimate returns the advisory cost of translating up to limit pending tasks.
func (s *Service) Estimate(ctx context.Context, limit int, pricePerMB float64) (Estimate, error) {
	if pricePerMB <= 0 {
		return Estimate{}, domain.NewValidationError("price_per_mb", "must be positive")
	}
	methodID := s.translator.MethodID()
	tasks, err := s.store.ListPending(ctx, methodID, limit)
	if err != nil {
		return Estimate{}, fmt.Errorf("translation: list pending: %w", err)
	}

	est := Estimate{
		MethodID:   methodID,
		Tasks:      len(tasks),
		PricePerMB: pricePerMB,
		Cost:       translator.EstimateCost(s.translator, tasks, pricePerMB),
	}
	for _, task := range tasks {
		set := s.translator.GenerateSamples(task)
		est.Samples += len(set.Samples)
		est.Bytes += set.TotalBytes()
	}
	s.log.InfoContext(ctx, "cost estimated",
		slog.String("method_id", methodID),
		slog.Int("tasks", est.Tasks),
		slog.Int("bytes", est.Bytes),
		slog.Float64("cost", est.Cost),
	)
	return est, nil
}

// Estimate is the outcome of a cost estimation.
type Estimate struct {
	MethodID   string
	Tasks      int
	Samples    int
	Bytes      int
	PricePerMB float64
	Cost       float64
}

// Stats returns task counts for the configured method.
func (s *Service) Stats(ctx context.Context) (domain.TaskStats, error) {
	stats, err := s.store.Stats(ctx, s.translator.MethodID())
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("translation: stats: %w", err)
	}
	return stats, nil
}

// RetryFailed clears failures of the configured method so the tasks are pending again.
func (s *Service) RetryFailed(ctx context.Context) (int, error) {
	methodID := s.translator.MethodID()
	n, err := s.store.RetryFailed(ctx, methodID)
	if err != nil {
		return 0, fmt.Errorf("translation: retry failed: %w", err)
	}
	s.log.InfoContext(ctx, "failed tasks reset", slog.String("method_id", methodID), slog.Int("count", n))
	return n, nil
}

// Preview is a translated task that was not stored.
type Preview struct {
	Task   domain.Task
	Result *domain.Result
}

// Preview translates up to limit pending tasks without writing anything to
// the store. The first failure aborts the preview.
func (s *Service) Preview(ctx context.Context, limit int) ([]Preview, error) {
	methodID := s.translator.MethodID()
	tasks, err := s.store.ListPending(ctx, methodID, limit)
	if err != nil {
		return nil, fmt.Errorf("translation: list pending: %w", err)
	}

	out := make([]Preview, 0, len(tasks))
	for _, task := range tasks {
		res, err := s.translator.Translate(ctx, task, s.sleep)
		if err != nil {
			return out, fmt.Errorf("translation: preview %s: %w", task.ID, err)
		}
		out = append(out, Preview{Task: task, Result: res})
	}
	s.log.DebugContext(ctx, "preview completed", slog.String("method_id", methodID), slog.Int("tasks", len(out)))
	return out, nil
}

// TaskView is a stored task with its result for the configured method.
// Result is nil while the task has no translation.
type TaskView struct {
	MethodID string
	Task     domain.Task
	Result   *domain.Result
}

// Show returns the task with the given id and its result, if any.
func (s *Service) Show(ctx context.Context, id string) (TaskView, error) {
	if id == "" {
		return TaskView{}, domain.NewValidationError("id", "required")
	}
	methodID := s.translator.MethodID()

	task, err := s.store.Get(ctx, id)
	if err != nil {
		return TaskView{}, fmt.Errorf("translation: get task: %w", err)
	}

	view := TaskView{MethodID: methodID, Task: *task}
	res, err := s.store.GetResult(ctx, id, methodID)
	switch {
	case err == nil:
		view.Result = res
	case errors.Is(err, domain.ErrNotFound):
	default:
		return TaskView{}, fmt.Errorf("translation: get result: %w", err)
	}
	return view, nil
}
