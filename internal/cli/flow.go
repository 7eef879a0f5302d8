package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ivr-audit/internal/export"
	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

var flowOut string

// flowCmd represents the flow command
var flowCmd = &cobra.Command{
	Use:   "flow <file|dir>...",
	Short: "Write per-script module-flow diagrams",
	Long: `Flow audits the exports and writes one Graphviz DOT diagram per script,
showing each module and the transitions the source tree declares.

Render with Graphviz, for example:
  ivr-audit flow batch.xml --out diagrams
  dot -Tsvg diagrams/flow_Main_Line.dot -o main_line.svg
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFlow,
}

func init() {
	rootCmd.AddCommand(flowCmd)
	flowCmd.Flags().StringVarP(&flowOut, "out", "o", "", "output directory (default from config)")
}

func runFlow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Export.Dir
	if flowOut != "" {
		outDir = flowOut
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

	written, err := export.WriteDOTFiles(outDir, result.Flows)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d diagram(s) to %s\n", len(written), outDir)
	return nil
}
