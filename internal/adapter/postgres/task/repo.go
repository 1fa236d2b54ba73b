// Package task implements the synset task store using PostgreSQL.
package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/wordnet-translator/internal/adapter/postgres"
	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

const (
	tasksTable   = "synset_tasks"
	resultsTable = "translation_results"

	statusTranslated = string(domain.TaskStatusTranslated)
	statusFailed     = string(domain.TaskStatusFailed)
)

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// ListPending returns up to limit tasks without a result row for methodID,
// ordered by id. A limit of zero means no limit.
func (r *Repo) ListPending(ctx context.Context, methodID string, limit int) ([]domain.Task, error) {
	query := postgres.Builder().
		Select("t.id", "t.pos", "t.words", "t.definition").
		From(tasksTable+" t").
		Where("NOT EXISTS (SELECT 1 FROM "+resultsTable+" r WHERE r.task_id = t.id AND r.method_id = ?)", methodID).
		OrderBy("t.id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("task.ListPending: build: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("task.ListPending: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task.ListPending: scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task.ListPending: %w", err)
	}
	return tasks, nil
}

// Get returns the task with the given id.
func (r *Repo) Get(ctx context.Context, id string) (*domain.Task, error) {
	sql, args, err := postgres.Builder().
		Select("id", "pos", "words", "definition").
		From(tasksTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("task.Get: build: %w", err)
	}

	t, err := scanTask(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}
	return &t, nil
}

// GetResult returns the stored result of methodID for task id.
func (r *Repo) GetResult(ctx context.Context, id, methodID string) (*domain.Result, error) {
	sql, args, err := postgres.Builder().
		Select("result").
		From(resultsTable).
		Where(squirrel.Eq{"task_id": id, "method_id": methodID, "status": statusTranslated}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("task.GetResult: build: %w", err)
	}

	var payload resultJSON
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&payload); err != nil {
		return nil, postgres.MapError(err, "result", id)
	}
	return payload.toDomain(), nil
}

// SaveResult stores the result for methodID, replacing an earlier failure.
func (r *Repo) SaveResult(ctx context.Context, taskID, methodID string, result *domain.Result) error {
	payload, err := json.Marshal(resultToJSON(result))
	if err != nil {
		return fmt.Errorf("task.SaveResult: encode: %w", err)
	}

	sql, args, err := postgres.Builder().
		Insert(resultsTable).
		Columns("task_id", "method_id", "status", "result", "error_message").
		Values(taskID, methodID, statusTranslated, payload, nil).
		Suffix(`ON CONFLICT (task_id, method_id) DO UPDATE
			SET status = EXCLUDED.status, result = EXCLUDED.result, error_message = NULL, updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("task.SaveResult: build: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "task", taskID)
	}
	return nil
}

// MarkFailed records msg as the failure of methodID. A stored result is kept.
func (r *Repo) MarkFailed(ctx context.Context, taskID, methodID, msg string) error {
	sql, args, err := postgres.Builder().
		Insert(resultsTable).
		Columns("task_id", "method_id", "status", "error_message").
		Values(taskID, methodID, statusFailed, msg).
		Suffix(`ON CONFLICT (task_id, method_id) DO UPDATE
			SET error_message = EXCLUDED.error_message, updated_at = now()
			WHERE ` + resultsTable + `.status = '` + statusFailed + `'`).
		ToSql()
	if err != nil {
		return fmt.Errorf("task.MarkFailed: build: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "task", taskID)
	}
	return nil
}

// RetryFailed deletes the failures of methodID so the tasks become pending again.
func (r *Repo) RetryFailed(ctx context.Context, methodID string) (int, error) {
	sql, args, err := postgres.Builder().
		Delete(resultsTable).
		Where(squirrel.Eq{"method_id": methodID, "status": statusFailed}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("task.RetryFailed: build: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("task.RetryFailed: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Stats counts the tasks per state for methodID.
func (r *Repo) Stats(ctx context.Context, methodID string) (domain.TaskStats, error) {
	sql, args, err := postgres.Builder().
		Select(
			"(SELECT count(*) FROM "+tasksTable+")",
			"count(*) FILTER (WHERE status = '"+statusTranslated+"')",
			"count(*) FILTER (WHERE status = '"+statusFailed+"')",
		).
		From(resultsTable).
		Where(squirrel.Eq{"method_id": methodID}).
		ToSql()
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("task.Stats: build: %w", err)
	}

	var total, translated, failed int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&total, &translated, &failed); err != nil {
		return domain.TaskStats{}, fmt.Errorf("task.Stats: %w", err)
	}

	return domain.TaskStats{
		Total:      int(total),
		Translated: int(translated),
		Failed:     int(failed),
		Pending:    int(total - translated - failed),
	}, nil
}

// UpsertTasks inserts new tasks and refreshes the lemmas and glosses of
// existing ones in one transaction. Results are untouched. It returns the
// number of tasks written.
func (r *Repo) UpsertTasks(ctx context.Context, tasks []domain.Task) (int, error) {
	if len(tasks) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("task.UpsertTasks: task %q: %w", t.ID, err)
		}
		words, err := json.Marshal(lemmasToJSON(t.Words))
		if err != nil {
			return 0, fmt.Errorf("task.UpsertTasks: encode %s: %w", t.ID, err)
		}
		definition := t.Definition
		if definition == nil {
			definition = []string{}
		}

		sql, args, err := postgres.Builder().
			Insert(tasksTable).
			Columns("id", "pos", "words", "definition").
			Values(t.ID, string(t.POS), words, definition).
			Suffix(`ON CONFLICT (id) DO UPDATE
				SET pos = EXCLUDED.pos, words = EXCLUDED.words, definition = EXCLUDED.definition, updated_at = now()`).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("task.UpsertTasks: build: %w", err)
		}
		batch.Queue(sql, args...)
	}

	written := 0
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
		defer br.Close()

		for i := range tasks {
			tag, err := br.Exec()
			if err != nil {
				return postgres.MapError(err, "task", tasks[i].ID)
			}
			written += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("task.UpsertTasks: %w", err)
	}
	return written, nil
}

// scanTask reads id, pos, words and definition from a row.
func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t     domain.Task
		pos   string
		words []lemmaJSON
	)
	if err := row.Scan(&t.ID, &pos, &words, &t.Definition); err != nil {
		return domain.Task{}, err
	}
	t.POS = domain.PartOfSpeech(pos)
	t.Words = lemmasFromJSON(words)
	return t, nil
}
