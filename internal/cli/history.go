package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ivr-audit/internal/history"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved audit runs",
	Long: `History lists runs previously saved with "audit --save", newest first,
with their summary counts.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Audit.HistoryDB); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
		return nil
	}

	store, err := history.Open(cfg.Audit.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tWHEN\tSOURCE\tSCRIPTS\tFAILED\tCALL VARS\tVARS\tSKILLS\tPROMPTS")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			run.ID[:8],
			run.CreatedAt.Local().Format(time.DateTime),
			run.Source,
			run.Summary.ScriptsAttempted,
			run.Summary.ScriptsFailed,
			run.Summary.UniqueCallVariables,
			run.Summary.UniqueLocalVariables,
			run.Summary.UniqueSkills,
			run.Summary.UniquePrompts,
		)
	}
	return tw.Flush()
}
