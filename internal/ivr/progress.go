package ivr

// ProgressReporter receives batch progress callbacks. Implementations must
// tolerate concurrent OnScriptProcessed calls when the auditor runs with
// more than one worker.
type ProgressReporter interface {
	// OnBatchStart reports how many scripts the batch contains.
	OnBatchStart(totalScripts int)

	// OnScriptProcessed reports that one script finished (parsed or failed).
	OnScriptProcessed(scriptName string)

	// OnBatchComplete reports the final summary.
	OnBatchComplete(summary Summary)
}

// NoOpProgressReporter ignores all progress callbacks.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnBatchStart(int)         {}
func (NoOpProgressReporter) OnScriptProcessed(string) {}
func (NoOpProgressReporter) OnBatchComplete(Summary)  {}
