package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordnet-translator/internal/app"
	"github.com/heartmarshall/wordnet-translator/internal/app/seeder"
	"github.com/heartmarshall/wordnet-translator/internal/domain"
	"github.com/heartmarshall/wordnet-translator/internal/service/translation"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var (
		dryRun    bool
		batchSize int
		pos       []string
	)

	cmd := &cobra.Command{
		Use:   "import <wordnet.json>",
		Short: "Load synsets from an Open English WordNet GWN-LMF JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parsePOS(pos)
			if err != nil {
				return err
			}
			return root.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				result, err := a.Importer(seeder.Config{BatchSize: batchSize, DryRun: dryRun, POS: filter}).Run(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "parsed %d synsets, wrote %d, skipped %d in %s\n",
					result.Parsed, result.Written, result.Skipped, result.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without writing to the store")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "tasks per write (default: translator.batch_size)")
	cmd.Flags().StringSliceVar(&pos, "pos", nil, "only import these parts of speech (n,v,a,s,r)")
	return cmd
}

func newTranslateCmd(root *rootOptions) *cobra.Command {
	var (
		limit    int
		dryRun   bool
		sleep    time.Duration
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate pending synsets with the configured method",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sleep < 0 {
				return fmt.Errorf("--sleep must not be negative (got %s)", sleep)
			}
			return root.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				svc, err := a.TranslationService(ctx, serviceOptions(cmd, dryRun, sleep))
				if err != nil {
					return err
				}
				if dryRun {
					previews, err := svc.Preview(ctx, limit)
					printPreviews(cmd, previews)
					return err
				}

				var bar translation.Progress
				if progress {
					stats, err := svc.Stats(ctx)
					if err != nil {
						return err
					}
					bar = newProgressBar(pendingWithin(stats.Pending, limit), svc.MethodID())
				}
				result, err := svc.Run(ctx, limit, bar)
				fmt.Fprintf(cmd.OutOrStdout(), "\nrun %s: %d tasks, %d translated, %d failed in %s\n",
					result.RunID, result.Total, result.Translated, result.Failed, result.Duration.Round(time.Millisecond))
				return err
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of tasks (0 = all pending)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "use the echo backend and print results without storing them")
	cmd.Flags().DurationVar(&sleep, "sleep", 0, "pause between service calls, 0 disables it (default: translator.sleep)")
	cmd.Flags().BoolVar(&progress, "progress", true, "show a progress bar")
	return cmd
}

// serviceOptions passes --sleep on only when it was given, so an explicit
// zero turns the pause off instead of falling back to the config.
func serviceOptions(cmd *cobra.Command, dryRun bool, sleep time.Duration) app.ServiceOptions {
	opts := app.ServiceOptions{DryRun: dryRun}
	if cmd.Flags().Changed("sleep") {
		opts.Sleep = &sleep
	}
	return opts
}

func newShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Print a synset task and its ranked translation for the configured method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				svc, err := a.OfflineService(ctx)
				if err != nil {
					return err
				}
				view, err := svc.Show(ctx, args[0])
				if err != nil {
					return err
				}
				printTaskView(cmd, view)
				return nil
			})
		},
	}
}

func newEstimateCmd(root *rootOptions) *cobra.Command {
	var (
		limit      int
		pricePerMB float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of translating pending synsets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				svc, err := a.OfflineService(ctx)
				if err != nil {
					return err
				}
				if pricePerMB <= 0 {
					pricePerMB = a.Config.Translator.EffectivePricePerMB()
				}
				est, err := svc.Estimate(ctx, limit, pricePerMB)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tasks, %d samples, %d bytes at %.2f/MB = %.4f\n",
					est.MethodID, est.Tasks, est.Samples, est.Bytes, est.PricePerMB, est.Cost)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of tasks (0 = all pending)")
	cmd.Flags().Float64Var(&pricePerMB, "price-per-mb", 0, "price per MiB of source text (default: provider list price)")
	return cmd
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts for the configured method",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				svc, err := a.OfflineService(ctx)
				if err != nil {
					return err
				}
				stats, err := svc.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n  total:      %d\n  translated: %d\n  failed:     %d\n  pending:    %d\n",
					svc.MethodID(), stats.Total, stats.Translated, stats.Failed, stats.Pending)
				return nil
			})
		},
	}
}

func newRetryFailedCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retry-failed",
		Short: "Make failed tasks of the configured method pending again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				svc, err := a.OfflineService(ctx)
				if err != nil {
					return err
				}
				n, err := svc.RetryFailed(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %d failed tasks\n", n)
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}

func newProgressBar(total int, methodID string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(methodID),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("tasks"),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

func pendingWithin(pending, limit int) int {
	if limit > 0 && limit < pending {
		return limit
	}
	return pending
}

func parsePOS(values []string) ([]domain.PartOfSpeech, error) {
	out := make([]domain.PartOfSpeech, 0, len(values))
	for _, v := range values {
		pos := domain.PartOfSpeech(strings.TrimSpace(v))
		if !pos.IsValid() {
			return nil, fmt.Errorf("unknown part of speech %q", v)
		}
		out = append(out, pos)
	}
	return out, nil
}

func printPreviews(cmd *cobra.Command, previews []translation.Preview) {
	w := cmd.OutOrStdout()
	for _, p := range previews {
		fmt.Fprintf(w, "%s [%s] %s -> %s\n", p.Task.ID, p.Task.POS, strings.Join(p.Task.LemmaTexts(), ", "), formatCounts(p.Result.Terms))
	}
}

func printTaskView(cmd *cobra.Command, view translation.TaskView) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s [%s] %s\n", view.Task.ID, view.Task.POS, strings.Join(view.Task.LemmaTexts(), ", "))
	for _, d := range view.Task.Definition {
		fmt.Fprintf(w, "  definition: %s\n", d)
	}
	if view.Result == nil {
		fmt.Fprintf(w, "%s: not translated\n", view.MethodID)
		return
	}
	fmt.Fprintf(w, "%s:\n", view.MethodID)
	fmt.Fprintf(w, "  terms:       %s\n", formatCounts(view.Result.Terms))
	fmt.Fprintf(w, "  definitions: %s\n", formatCounts(view.Result.Definitions))
}

func formatCounts(counts []domain.TermCount) string {
	out := make([]string, 0, len(counts))
	for _, tc := range counts {
		out = append(out, fmt.Sprintf("%s(%d)", tc.Term, tc.Count))
	}
	return strings.Join(out, ", ")
}
