// Package ctxutil carries per-run identifiers through a context so log
// records from different layers can be correlated.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey    ctxKey = "run_id"
	methodIDKey ctxKey = "method_id"
)

// WithRunID stores the run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithMethodID stores the translator method id in the context.
func WithMethodID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, methodIDKey, id)
}

// MethodIDFromCtx extracts the method id from the context.
// Returns an empty string if absent.
func MethodIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(methodIDKey).(string)
	return id
}
