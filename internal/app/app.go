// Package app wires configuration, the task store, translation backends and
// services together for the command-line entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordnet-translator/internal/adapter/mongo"
	"github.com/heartmarshall/wordnet-translator/internal/adapter/postgres"
	"github.com/heartmarshall/wordnet-translator/internal/adapter/postgres/task"
	"github.com/heartmarshall/wordnet-translator/internal/adapter/provider/bing"
	"github.com/heartmarshall/wordnet-translator/internal/adapter/provider/google"
	"github.com/heartmarshall/wordnet-translator/internal/adapter/provider/translate"
	"github.com/heartmarshall/wordnet-translator/internal/app/seeder"
	"github.com/heartmarshall/wordnet-translator/internal/config"
	"github.com/heartmarshall/wordnet-translator/internal/domain"
	"github.com/heartmarshall/wordnet-translator/internal/service/translation"
	"github.com/heartmarshall/wordnet-translator/internal/translator"
)

// TaskStore is everything the commands need from a store driver.
type TaskStore interface {
	seeder.TaskWriter
	Get(ctx context.Context, id string) (*domain.Task, error)
	GetResult(ctx context.Context, id, methodID string) (*domain.Result, error)
	ListPending(ctx context.Context, methodID string, limit int) ([]domain.Task, error)
	SaveResult(ctx context.Context, taskID, methodID string, result *domain.Result) error
	MarkFailed(ctx context.Context, taskID, methodID, msg string) error
	RetryFailed(ctx context.Context, methodID string) (int, error)
	Stats(ctx context.Context, methodID string) (domain.TaskStats, error)
}

var (
	_ TaskStore = (*mongo.Store)(nil)
	_ TaskStore = (*task.Repo)(nil)
)

// App holds the long-lived dependencies of one command invocation.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Store  TaskStore

	closers []func(ctx context.Context) error
}

// New opens the store selected by cfg.Store.Driver.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: logger}

	switch cfg.Store.Driver {
	case config.DriverMongo:
		store, err := mongo.Open(ctx, cfg.Store.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Store = store
		a.closers = append(a.closers, store.Close)

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Store.Postgres)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Store = task.New(pool)
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})

	default:
		return nil, fmt.Errorf("app: unsupported store driver %q", cfg.Store.Driver)
	}

	logger.Debug("store opened", slog.String("driver", cfg.Store.Driver))
	return a, nil
}

// Close releases the store connection.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Backends builds the service client required by the configured method.
// With dryRun the identity backend stands in for every service.
func (a *App) Backends(ctx context.Context, dryRun bool) (translator.Backends, error) {
	if dryRun {
		echo := translate.NewEcho()
		return translator.Backends{Bing: echo, Google: echo}, nil
	}
	if err := a.Config.ValidateCredentials(); err != nil {
		return translator.Backends{}, fmt.Errorf("app: %w", err)
	}

	method := translator.Method(a.Config.Translator.Method)
	switch method.Provider() {
	case "google":
		client, err := google.NewClient(ctx, a.Config.Google.CredentialsFile, a.Config.Google.Endpoint, a.Log)
		if err != nil {
			return translator.Backends{}, fmt.Errorf("app: %w", err)
		}
		return translator.Backends{Google: client}, nil
	default:
		client, err := bing.NewClientFromKeyFile(a.Config.Bing.KeyFile, a.Config.Bing.Endpoint, a.Log)
		if err != nil {
			return translator.Backends{}, fmt.Errorf("app: %w", err)
		}
		return translator.Backends{Bing: client}, nil
	}
}

// Translator builds the configured translator over backends.
func (a *App) Translator(backends translator.Backends) (translator.Translator, error) {
	method := translator.Method(a.Config.Translator.Method)
	t, err := translator.New(method, a.Config.Translator.Options(), backends, a.Log)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return t, nil
}

// ServiceOptions adjust a translation service for one command.
type ServiceOptions struct {
	DryRun bool
	// Sleep overrides translator.sleep when set. Zero disables the pause.
	Sleep *time.Duration
}

// TranslationService builds the service for the configured method.
func (a *App) TranslationService(ctx context.Context, opts ServiceOptions) (*translation.Service, error) {
	backends, err := a.Backends(ctx, opts.DryRun)
	if err != nil {
		return nil, err
	}
	t, err := a.Translator(backends)
	if err != nil {
		return nil, err
	}
	sleep := a.Config.Translator.Sleep
	if opts.Sleep != nil {
		sleep = *opts.Sleep
	}
	return translation.NewService(a.Log, a.Store, t, sleep), nil
}

// OfflineService builds a service that never calls an external backend.
// Estimate, stats and retry-failed only need the method id and the prompts,
// which do not depend on the backend.
func (a *App) OfflineService(ctx context.Context) (*translation.Service, error) {
	return a.TranslationService(ctx, ServiceOptions{DryRun: true})
}

// Importer builds the WordNet import pipeline.
func (a *App) Importer(cfg seeder.Config) *seeder.Pipeline {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = a.Config.Translator.BatchSize
	}
	return seeder.NewPipeline(a.Log, a.Store, cfg)
}
