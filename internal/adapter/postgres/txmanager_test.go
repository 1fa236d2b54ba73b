package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordnet-translator/internal/adapter/postgres"
	"github.com/heartmarshall/wordnet-translator/internal/adapter/postgres/testhelper"
)

func taskExists(t *testing.T, pool *pgxpool.Pool, id string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM synset_tasks WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("taskExists query: %v", err)
	}
	return exists
}

func insertTask(ctx context.Context, q postgres.Querier, id string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO synset_tasks (id, pos, words) VALUES ($1, 'n', '[{"key":"1","text":"dog"}]')`, id)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertTask(ctx, postgres.QuerierFromCtx(ctx, pool), "commit.n.01")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	if !taskExists(t, pool, "commit.n.01") {
		t.Fatal("expected task to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertTask(ctx, postgres.QuerierFromCtx(ctx, pool), "rollback.n.01"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if taskExists(t, pool, "rollback.n.01") {
		t.Fatal("expected task NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	defer func() {
		if r := recover(); r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if taskExists(t, pool, "panic.n.01") {
			t.Fatal("expected task NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertTask(ctx, postgres.QuerierFromCtx(ctx, pool), "panic.n.01"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		inner := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertTask(ctx, postgres.QuerierFromCtx(ctx, pool), "nested.n.01")
		})
		if inner != nil {
			t.Fatalf("inner RunInTx: %v", inner)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if taskExists(t, pool, "nested.n.01") {
		t.Fatal("inner work must roll back with the outer transaction")
	}
}
