package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ivr-audit/internal/history"
	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

var (
	auditWorkers int
	auditQuiet   bool
	auditSave    bool
	auditWatch   bool
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <file|dir>...",
	Short: "Extract variables, skills, and prompts from IVR exports",
	Long: `Audit parses one or more IVR XML exports and prints the extracted
record tables: call variables, local variables, skills, prompts, and any
per-script failures.

A batch export with multiple <IVRScripts> blocks is split per script; a
corrupt script becomes a failure row and never aborts its siblings.

Examples:
  # Audit one export
  ivr-audit audit batch.xml

  # Audit every export under a directory
  ivr-audit audit ./exports

  # Persist the run summary for later comparison
  ivr-audit audit batch.xml --save

  # Re-audit automatically when the export changes
  ivr-audit audit batch.xml --watch
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().IntVarP(&auditWorkers, "workers", "w", 0, "scripts processed concurrently (default from config)")
	auditCmd.Flags().BoolVarP(&auditQuiet, "quiet", "q", false, "disable progress output")
	auditCmd.Flags().BoolVar(&auditSave, "save", false, "save the run summary to the history database")
	auditCmd.Flags().BoolVar(&auditWatch, "watch", false, "watch input files and re-audit on change")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	workers := cfg.Audit.Workers
	if auditWorkers > 0 {
		workers = auditWorkers
	}

	files, err := resolveInputs(cfg, args)
	if err != nil {
		return err
	}

	auditor := ivr.NewAuditor(ivr.Options{
		Workers:  workers,
		Logger:   slog.Default(),
		Progress: NewCLIProgressReporter(auditQuiet),
	})

	runOnce := func() error {
		result, err := auditFiles(ctx, auditor, files)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), result)

		if auditSave {
			runID, err := saveRun(cfg.Audit.HistoryDB, strings.Join(args, ","), result)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved run %s\n", runID)
		}
		return nil
	}

	if err := runOnce(); err != nil {
		return err
	}
	if !auditWatch {
		return nil
	}
	return watchAndRerun(ctx, cfg, auditor, files, cmd)
}

func saveRun(dbPath, source string, result *ivr.BatchResult) (string, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()
	return store.SaveRun(source, result)
}
