package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ivr-audit/internal/export"
	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file|dir>...",
	Short: "Audit and write the record tables to files",
	Long: `Export runs the audit and writes the results to disk instead of the
terminal.

Formats:
  csv   one file per non-empty table (call_variables.csv, variables.csv,
        skills.csv, prompts.csv, ivr_failures.csv)
  json  the whole result, summary included, as result.json
  dot   one Graphviz flow diagram per script (flow_<script>.dot)
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv, json, or dot")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Export.Dir
	if exportOut != "" {
		outDir = exportOut
	}

	files, err := resolveInputs(cfg, args)
	if err != nil {
		return err
	}
	auditor := ivr.NewAuditor(ivr.Options{Workers: cfg.Audit.Workers, Logger: slog.Default()})
	result, err := auditFiles(cmd.Context(), auditor, files)
	if err != nil {
		return err
	}

	var written []string
	switch exportFormat {
	case "csv":
		written, err = export.WriteCSVFiles(outDir, result)
	case "json":
		path := filepath.Join(outDir, "result.json")
		if err = ensureDir(outDir); err == nil {
			if err = export.WriteJSON(path, result); err == nil {
				written = []string{path}
			}
		}
	case "dot":
		written, err = export.WriteDOTFiles(outDir, result.Flows)
	default:
		return fmt.Errorf("unknown format %q (want csv, json, or dot)", exportFormat)
	}
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d file(s) to %s\n", len(written), outDir)
	return nil
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
