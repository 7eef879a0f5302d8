package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ivr-audit/internal/config"
	"github.com/mvp-joe/ivr-audit/internal/ivr"
	"github.com/mvp-joe/ivr-audit/internal/watch"
)

// watchAndRerun blocks, re-auditing the changed file on every write, until the
// context is cancelled. Unchanged content is served from the result cache,
// so touch-without-change events print the previous tables without
// re-parsing.
func watchAndRerun(ctx context.Context, cfg *config.Config, auditor *ivr.Auditor, files []string, cmd *cobra.Command) error {
	cache, err := watch.NewResultCache(cfg.Audit.CacheSize)
	if err != nil {
		return err
	}
	defer cache.Close()

	rerun := make(chan string, 1)
	watcher, err := watch.New(files, func(path string) {
		select {
		case rerun <- path:
		default:
		}
	}, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	watcher.Start(ctx)
	defer watcher.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes. Press Ctrl+C to stop.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-rerun:
			raw, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("failed to re-read export", "path", path, "error", err)
				continue
			}
			result, ok := cache.Get(raw)
			if !ok {
				result, err = auditor.Run(ctx, raw)
				if err != nil {
					return err
				}
				cache.Put(raw, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s changed:\n\n", path)
			printResult(cmd.OutOrStdout(), result)
		}
	}
}
