// Package seeder loads WordNet synsets into the task store.
package seeder

import (
	"context"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// TaskWriter is the store contract consumed by the import pipeline.
// Implemented by mongo.Store and task.Repo.
type TaskWriter interface {
	// UpsertTasks inserts or replaces tasks by id and keeps stored results.
	UpsertTasks(ctx context.Context, tasks []domain.Task) (int, error)
}
