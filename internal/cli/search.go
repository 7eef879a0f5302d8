package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
	"github.com/mvp-joe/ivr-audit/internal/search"
)

var (
	searchCategory string
	searchScript   string
	searchLimit    int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query> <file|dir>...",
	Short: "Search extracted records",
	Long: `Search audits the exports, indexes every extracted record, and prints
the ones matching the query. Bleve query-string syntax applies, wildcards
included.

Examples:
  ivr-audit search Status batch.xml
  ivr-audit search 'Order*' batch.xml --category call_variable
  ivr-audit search Welcome ./exports --script "Main Line"
`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchCategory, "category", "",
		"restrict to one category: call_variable, local_variable, skill, prompt, failure")
	searchCmd.Flags().StringVar(&searchScript, "script", "", "restrict to one script name")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "maximum hits to print")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, paths := args[0], args[1:]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	files, err := resolveInputs(cfg, paths)
	if err != nil {
		return err
	}
	auditor := ivr.NewAuditor(ivr.Options{Workers: cfg.Audit.Workers, Logger: slog.Default()})
	result, err := auditFiles(cmd.Context(), auditor, files)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(result)
	if err != nil {
		return err
	}
	defer searcher.Close()

	hits, err := searcher.Search(cmd.Context(), query, &search.Options{
		Category: searchCategory,
		Script:   searchScript,
		Limit:    searchLimit,
	})
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSCRIPT\tNAME\tGROUP\tMODULE")
	for _, h := range hits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.Category, h.Script, h.Name, h.Group, h.Module)
	}
	tw.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "%d match(es)\n", len(hits))
	return nil
}
