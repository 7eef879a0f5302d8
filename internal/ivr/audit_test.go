package ivr

// Test Plan for Auditor.Run:
// - Any input terminates with a BatchResult (blank, garbage, huge batch)
// - Attempted == wrapper count; succeeded + failed == attempted
// - Identical input yields identical results (including multi-worker runs)
// - Round-trip: Orders.Status becomes exactly one call variable record
// - Duplicate variable across scripts: one record per script, one unique
// - Malformed middle script isolates: siblings still extracted, in order
// - Placeholder names stay unique across the batch
// - Empty batch container yields zero attempts
// - Cancelled context aborts with an error
// - Progress reporter sees every script

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditor(workers int) *Auditor {
	return NewAuditor(Options{Workers: workers, Logger: discard})
}

func runBatch(t *testing.T, text string) *BatchResult {
	t.Helper()
	result, err := newTestAuditor(1).Run(context.Background(), []byte(text))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestRun_RoundTrip(t *testing.T) {
	t.Parallel()

	batch := batchDoc(wrapScript("Orders Line", ivrDoc(`<input><variableName>Orders.Status</variableName></input>`)))
	result := runBatch(t, batch)

	require.Len(t, result.CallVariables, 1)
	rec := result.CallVariables[0]
	assert.Equal(t, "Orders Line", rec.ScriptName)
	assert.Equal(t, "Orders", rec.Group)
	assert.Equal(t, "Status", rec.Name)
	assert.Equal(t, VariableKindCall, rec.Kind)

	assert.Equal(t, Summary{
		ScriptsAttempted:    1,
		ScriptsSucceeded:    1,
		UniqueCallVariables: 1,
	}, result.Summary)
}

func TestRun_MalformedMiddleScriptIsIsolated(t *testing.T) {
	t.Parallel()

	batch := batchDoc(
		wrapScript("First", ivrDoc(`<input><variableName>A.one</variableName></input>`)),
		"<IVRScripts><Name>Second</Name><XMLDefinition>&lt;broken</XMLDefinition></IVRScripts>",
		wrapScript("Third", ivrDoc(`<input><variableName>C.three</variableName></input>`)),
	)
	result := runBatch(t, batch)

	assert.Equal(t, 3, result.Summary.ScriptsAttempted)
	assert.Equal(t, 2, result.Summary.ScriptsSucceeded)
	assert.Equal(t, 1, result.Summary.ScriptsFailed)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Second", result.Failures[0].ScriptName)
	assert.Positive(t, result.Failures[0].Offset)

	require.Len(t, result.CallVariables, 2)
	assert.Equal(t, "First", result.CallVariables[0].ScriptName)
	assert.Equal(t, "Third", result.CallVariables[1].ScriptName)
}

func TestRun_DuplicateVariableAcrossScripts(t *testing.T) {
	t.Parallel()

	script := ivrDoc(`<input><variableName>Orders.Status</variableName></input>`)
	batch := batchDoc(wrapScript("A", script), wrapScript("B", script))
	result := runBatch(t, batch)

	// One row per script occurrence, one unique variable overall.
	require.Len(t, result.CallVariables, 2)
	assert.Equal(t, 1, result.Summary.UniqueCallVariables)
}

func TestRun_DuplicateWithinScriptCollapses(t *testing.T) {
	t.Parallel()

	batch := batchDoc(wrapScript("A", ivrDoc(
		`<input><variableName>Orders.Status</variableName></input>`,
		`<setVariable><variableName>Orders.Status</variableName></setVariable>`,
	)))
	result := runBatch(t, batch)
	assert.Len(t, result.CallVariables, 1)
}

func TestRun_PlaceholderNamesUniquePerBatch(t *testing.T) {
	t.Parallel()

	nameless := ivrDoc(`<hangup/>`)
	batch := batchDoc(wrapScript("", nameless), wrapScript("", nameless), wrapScript("", nameless))
	result := runBatch(t, batch)

	require.Len(t, result.Flows, 3)
	seen := map[string]bool{}
	for _, flow := range result.Flows {
		assert.False(t, seen[flow.ScriptName], "placeholder %q reused", flow.ScriptName)
		seen[flow.ScriptName] = true
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	batch := batchDoc(
		wrapScript("A", ivrDoc(`<skillTransfer><listOfSkillsEx><extrnalObj><name>Tier1</name></extrnalObj></listOfSkillsEx></skillTransfer>`)),
		"<IVRScripts><Name>Bad</Name><XMLDefinition>&lt;nope</XMLDefinition></IVRScripts>",
		wrapScript("B", ivrDoc(`<play><prompt><name>Welcome</name></prompt></play>`)),
	)
	first := runBatch(t, batch)
	second := runBatch(t, batch)
	assert.Equal(t, first, second)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	var wrappers []string
	for i := 0; i < 20; i++ {
		wrappers = append(wrappers, wrapScript(fmt.Sprintf("S%02d", i),
			ivrDoc(fmt.Sprintf(`<input><variableName>G%d.v</variableName></input>`, i))))
	}
	batch := batchDoc(wrappers...)

	sequential := runBatch(t, batch)
	parallel, err := newTestAuditor(8).Run(context.Background(), []byte(batch))
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestRun_NeverAborts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		attempted int
		failed    int
	}{
		{"empty input", "", 0, 0},
		{"whitespace", " \n ", 0, 0},
		{"empty container", "<scripts/>", 0, 0},
		{"entirely malformed", "<<<not xml>>>", 1, 1},
		{"unrecognized document", "<inventory><item>x</item></inventory>", 1, 1},
		{"stray ampersand", "<ivrScript><modules><a>Fish & Chips</a></modules></ivrScript>", 1, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := runBatch(t, tt.input)
			assert.Equal(t, tt.attempted, result.Summary.ScriptsAttempted)
			assert.Equal(t, tt.failed, result.Summary.ScriptsFailed)
			assert.Equal(t, result.Summary.ScriptsAttempted,
				result.Summary.ScriptsSucceeded+result.Summary.ScriptsFailed)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := batchDoc(wrapScript("A", ivrDoc(`<hangup/>`)))
	_, err := newTestAuditor(2).Run(ctx, []byte(batch))
	assert.Error(t, err)
}

func TestMergeResults_RecomputesUniqueCounts(t *testing.T) {
	t.Parallel()

	script := ivrDoc(`<input><variableName>Orders.Status</variableName></input>`)
	first := runBatch(t, batchDoc(wrapScript("A", script)))
	second := runBatch(t, batchDoc(wrapScript("B", script), "<IVRScripts><Name>C</Name><XMLDefinition>&lt;bad</XMLDefinition></IVRScripts>"))

	merged := MergeResults(first, second)
	assert.Equal(t, 3, merged.Summary.ScriptsAttempted)
	assert.Equal(t, 2, merged.Summary.ScriptsSucceeded)
	assert.Equal(t, 1, merged.Summary.ScriptsFailed)
	// Same variable in both files still counts once.
	assert.Len(t, merged.CallVariables, 2)
	assert.Equal(t, 1, merged.Summary.UniqueCallVariables)
	assert.Equal(t, "A", merged.CallVariables[0].ScriptName)
	assert.Equal(t, "B", merged.CallVariables[1].ScriptName)
}

type countingReporter struct {
	started   atomic.Int64
	processed atomic.Int64
	completed atomic.Int64
}

func (c *countingReporter) OnBatchStart(total int)   { c.started.Store(int64(total)) }
func (c *countingReporter) OnScriptProcessed(string) { c.processed.Add(1) }
func (c *countingReporter) OnBatchComplete(Summary)  { c.completed.Add(1) }

func TestRun_ProgressCallbacks(t *testing.T) {
	t.Parallel()

	reporter := &countingReporter{}
	auditor := NewAuditor(Options{Workers: 4, Logger: discard, Progress: reporter})

	batch := batchDoc(
		wrapScript("A", ivrDoc(`<hangup/>`)),
		wrapScript("B", ivrDoc(`<hangup/>`)),
		"<IVRScripts><Name>C</Name><XMLDefinition>&lt;bad</XMLDefinition></IVRScripts>",
	)
	_, err := auditor.Run(context.Background(), []byte(batch))
	require.NoError(t, err)

	assert.Equal(t, int64(3), reporter.started.Load())
	assert.Equal(t, int64(3), reporter.processed.Load())
	assert.Equal(t, int64(1), reporter.completed.Load())
}
