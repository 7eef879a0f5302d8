package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// CLIProgressReporter renders batch progress as a progress bar. Callback
// methods are safe for the auditor's concurrent workers: the bar serializes
// internally.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a progress reporter; quiet disables all
// output.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnBatchStart(totalScripts int) {
	if c.quiet || totalScripts == 0 {
		return
	}
	c.bar = progressbar.NewOptions(totalScripts,
		progressbar.OptionSetDescription("Auditing scripts"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("scripts/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnScriptProcessed(string) {
	if c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnBatchComplete(ivr.Summary) {
	if c.bar == nil {
		return
	}
	c.bar.Finish()
	c.bar = nil
}
