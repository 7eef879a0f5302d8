package ivr

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Options configures an Auditor. The zero value is usable.
type Options struct {
	// Workers bounds how many scripts are processed concurrently.
	// Values below 1 mean sequential processing.
	Workers int

	// Logger receives debug traces for per-field skips. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Progress receives batch progress callbacks. Defaults to no-op.
	Progress ProgressReporter
}

// Auditor is the single entry point of the extraction pipeline: raw export
// bytes in, BatchResult out.
type Auditor struct {
	workers  int
	log      *slog.Logger
	progress ProgressReporter
}

// NewAuditor creates an Auditor.
func NewAuditor(opts Options) *Auditor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Progress == nil {
		opts.Progress = NoOpProgressReporter{}
	}
	return &Auditor{
		workers:  opts.Workers,
		log:      opts.Logger,
		progress: opts.Progress,
	}
}

// scriptOutcome is the immutable result of processing one fragment. Exactly
// one of failure or the record slices is populated.
type scriptOutcome struct {
	failure *FailureRecord

	callVars  []VariableRecord
	localVars []VariableRecord
	skills    []SkillRecord
	prompts   []PromptRecord
	flow      ScriptFlow
}

// Run executes the full pipeline: sanitize, split, then parse-and-extract
// every script. Corruption never aborts the batch: a script that cannot be
// parsed becomes a FailureRecord and its siblings are still extracted. The
// only error Run returns is context cancellation.
//
// Scripts are independent, so they are processed concurrently up to the
// worker limit; outcomes are reassembled in batch order before merging, so
// identical input always yields an identical result.
func (a *Auditor) Run(ctx context.Context, raw []byte) (*BatchResult, error) {
	frags := Split(Sanitize(raw))
	a.progress.OnBatchStart(len(frags))

	outcomes := make([]scriptOutcome, len(frags))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, frag := range frags {
		i, frag := i, frag
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = a.processFragment(frag, i+1)
			a.progress.OnScriptProcessed(outcomeName(outcomes[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := merge(outcomes)
	a.progress.OnBatchComplete(result.Summary)
	return result, nil
}

// processFragment runs one script through parse and all four extractors.
// The parsed module tree lives only for the duration of this call.
func (a *Auditor) processFragment(frag Fragment, seq int) scriptOutcome {
	doc, failure := ParseScript(frag, seq)
	if failure != nil {
		a.log.Debug("script failed to parse",
			"script", failure.ScriptName, "offset", failure.Offset, "error", failure.Error)
		return scriptOutcome{failure: failure}
	}
	return scriptOutcome{
		callVars:  ExtractCallVariables(doc),
		localVars: ExtractLocalVariables(doc),
		skills:    ExtractSkills(doc, a.log),
		prompts:   ExtractPrompts(doc),
		flow:      BuildFlow(doc),
	}
}

func outcomeName(o scriptOutcome) string {
	if o.failure != nil {
		return o.failure.ScriptName
	}
	return o.flow.ScriptName
}

// merge concatenates per-script outcomes in batch order and derives the
// summary counts.
func merge(outcomes []scriptOutcome) *BatchResult {
	result := &BatchResult{}
	result.Summary.ScriptsAttempted = len(outcomes)

	for _, o := range outcomes {
		if o.failure != nil {
			result.Summary.ScriptsFailed++
			result.Failures = append(result.Failures, *o.failure)
			continue
		}
		result.Summary.ScriptsSucceeded++
		result.CallVariables = append(result.CallVariables, o.callVars...)
		result.LocalVariables = append(result.LocalVariables, o.localVars...)
		result.Skills = append(result.Skills, o.skills...)
		result.Prompts = append(result.Prompts, o.prompts...)
		result.Flows = append(result.Flows, o.flow)
	}

	result.Summary.UniqueCallVariables = countUniqueVariables(result.CallVariables)
	result.Summary.UniqueLocalVariables = countUniqueVariables(result.LocalVariables)
	result.Summary.UniqueSkills = countUniqueSkills(result.Skills)
	result.Summary.UniquePrompts = countUniquePrompts(result.Prompts)
	return result
}

// MergeResults combines per-file results into one, preserving input order
// and recomputing the batch-wide unique counts.
func MergeResults(results ...*BatchResult) *BatchResult {
	merged := &BatchResult{}
	for _, r := range results {
		merged.CallVariables = append(merged.CallVariables, r.CallVariables...)
		merged.LocalVariables = append(merged.LocalVariables, r.LocalVariables...)
		merged.Skills = append(merged.Skills, r.Skills...)
		merged.Prompts = append(merged.Prompts, r.Prompts...)
		merged.Failures = append(merged.Failures, r.Failures...)
		merged.Flows = append(merged.Flows, r.Flows...)
		merged.Summary.ScriptsAttempted += r.Summary.ScriptsAttempted
		merged.Summary.ScriptsSucceeded += r.Summary.ScriptsSucceeded
		merged.Summary.ScriptsFailed += r.Summary.ScriptsFailed
	}
	merged.Summary.UniqueCallVariables = countUniqueVariables(merged.CallVariables)
	merged.Summary.UniqueLocalVariables = countUniqueVariables(merged.LocalVariables)
	merged.Summary.UniqueSkills = countUniqueSkills(merged.Skills)
	merged.Summary.UniquePrompts = countUniquePrompts(merged.Prompts)
	return merged
}

func countUniqueVariables(records []VariableRecord) int {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		seen[r.Group+"\x00"+r.Name+"\x00"+string(r.Kind)] = true
	}
	return len(seen)
}

func countUniqueSkills(records []SkillRecord) int {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		seen[r.SkillName] = true
	}
	return len(seen)
}

func countUniquePrompts(records []PromptRecord) int {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		seen[r.PromptName] = true
	}
	return len(seen)
}
