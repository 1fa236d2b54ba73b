package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordnet-translator/internal/app"
	"github.com/heartmarshall/wordnet-translator/internal/config"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "wntrans",
		Short:         "Translate WordNet synsets with online translation services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config (overrides CONFIG_PATH)")

	cmd.AddCommand(
		newImportCmd(opts),
		newTranslateCmd(opts),
		newEstimateCmd(opts),
		newStatsCmd(opts),
		newShowCmd(opts),
		newRetryFailedCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig honours --config before delegating to config.Load.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		if err := os.Setenv("CONFIG_PATH", o.configPath); err != nil {
			return nil, fmt.Errorf("set CONFIG_PATH: %w", err)
		}
	}
	return config.Load()
}

// withApp loads configuration, opens the store and runs fn.
// The store is closed when fn returns.
func (o *rootOptions) withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("close store", slog.String("error", err.Error()))
		}
	}()

	return fn(ctx, a)
}
