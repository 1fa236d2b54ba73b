package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

const (
	resultsField  = "results"
	failuresField = "failures"
)

// fieldPaths returns the results and failures paths for methodID. Method ids
// become field names, so they must not contain path separators.
func fieldPaths(methodID string) (results, failures string, err error) {
	if methodID == "" || strings.ContainsAny(methodID, ".$") {
		return "", "", fmt.Errorf("mongo: invalid method id %q: %w", methodID, domain.ErrValidation)
	}
	return resultsField + "." + methodID, failuresField + "." + methodID, nil
}

func pendingFilter(results, failures string) bson.M {
	return bson.M{
		results:  bson.M{"$exists": false},
		failures: bson.M{"$exists": false},
	}
}

// ListPending returns up to limit tasks that have neither a result nor a
// failure for methodID, ordered by id. A limit of zero means no limit.
func (s *Store) ListPending(ctx context.Context, methodID string, limit int) ([]domain.Task, error) {
	results, failures, err := fieldPaths(methodID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{resultsField: 0, failuresField: 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, pendingFilter(results, failures), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list pending: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode pending: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		task, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Get returns the task with the given id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Task, error) {
	var doc taskDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{resultsField: 0, failuresField: 0})).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "get task")
	}
	task, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	return &task, nil
}

// GetResult returns the stored result of methodID for task id.
func (s *Store) GetResult(ctx context.Context, id, methodID string) (*domain.Result, error) {
	results, _, err := fieldPaths(methodID)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = s.coll.FindOne(ctx,
		bson.M{"_id": id, results: bson.M{"$exists": true}},
		options.FindOne().SetProjection(bson.M{results: 1}),
	).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "get result")
	}
	return doc.Results[methodID].toDomain(), nil
}

// SaveResult stores the result under methodID and clears an earlier failure.
func (s *Store) SaveResult(ctx context.Context, taskID, methodID string, result *domain.Result) error {
	results, failures, err := fieldPaths(methodID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set":   bson.M{results: resultToDoc(result, time.Now().UTC())},
		"$unset": bson.M{failures: ""},
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return fmt.Errorf("mongo: save result: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo: save result %s: %w", taskID, domain.ErrNotFound)
	}
	return nil
}

// MarkFailed records msg as the failure of methodID on the task.
func (s *Store) MarkFailed(ctx context.Context, taskID, methodID, msg string) error {
	_, failures, err := fieldPaths(methodID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{failures: failureDocument{Error: msg, FailedAt: time.Now().UTC()}}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return fmt.Errorf("mongo: mark failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo: mark failed %s: %w", taskID, domain.ErrNotFound)
	}
	return nil
}

// RetryFailed clears every failure of methodID so the tasks become pending again.
func (s *Store) RetryFailed(ctx context.Context, methodID string) (int, error) {
	_, failures, err := fieldPaths(methodID)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.UpdateMany(ctx,
		bson.M{failures: bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{failures: ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("mongo: retry failed: %w", err)
	}
	return int(res.ModifiedCount), nil
}

// Stats counts the tasks per state for methodID.
func (s *Store) Stats(ctx context.Context, methodID string) (domain.TaskStats, error) {
	results, failures, err := fieldPaths(methodID)
	if err != nil {
		return domain.TaskStats{}, err
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("mongo: count tasks: %w", err)
	}
	translated, err := s.coll.CountDocuments(ctx, bson.M{results: bson.M{"$exists": true}})
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("mongo: count translated: %w", err)
	}
	failed, err := s.coll.CountDocuments(ctx, bson.M{
		failures: bson.M{"$exists": true},
		results:  bson.M{"$exists": false},
	})
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("mongo: count failed: %w", err)
	}

	return domain.TaskStats{
		Total:      int(total),
		Translated: int(translated),
		Failed:     int(failed),
		Pending:    int(total - translated - failed),
	}, nil
}

// UpsertTasks inserts new tasks and refreshes the lemmas and glosses of
// existing ones, leaving their results untouched. It returns the number of
// tasks written.
func (s *Store) UpsertTasks(ctx context.Context, tasks []domain.Task) (int, error) {
	if len(tasks) == 0 {
		return 0, nil
	}

	models := make([]driver.WriteModel, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("mongo: task %q: %w", t.ID, err)
		}
		models = append(models, driver.NewUpdateOneModel().
			SetFilter(bson.M{"_id": t.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"pos":        string(t.POS),
				"words":      wordsToDoc(t.Words),
				"definition": nonNil(t.Definition),
			}}).
			SetUpsert(true))
	}

	res, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("mongo: upsert tasks: %w", err)
	}

	written := int(res.UpsertedCount + res.MatchedCount)
	s.log.DebugContext(ctx, "tasks upserted",
		slog.Int("inserted", int(res.UpsertedCount)),
		slog.Int("matched", int(res.MatchedCount)),
	)
	return written, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// mapError converts driver errors to domain errors.
func mapError(err error, op string) error {
	if errors.Is(err, driver.ErrNoDocuments) {
		return fmt.Errorf("mongo: %s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("mongo: %s: %w", op, err)
}
