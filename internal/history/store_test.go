package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveRun_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	result := &ivr.BatchResult{
		Failures: []ivr.FailureRecord{
			{ScriptName: "Broken", Error: "bad xml", Offset: 10},
		},
		Summary: ivr.Summary{
			ScriptsAttempted:    3,
			ScriptsSucceeded:    2,
			ScriptsFailed:       1,
			UniqueCallVariables: 4,
			UniqueSkills:        2,
		},
	}

	runID, err := store.SaveRun("exports/batch.xml", result)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "exports/batch.xml", runs[0].Source)
	assert.Equal(t, result.Summary, runs[0].Summary)
	assert.False(t, runs[0].CreatedAt.IsZero())

	failures, err := store.RunFailures(runID)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, result.Failures[0], failures[0])
}

func TestListRuns_LimitAndOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := store.SaveRun("batch.xml", &ivr.BatchResult{
			Summary: ivr.Summary{ScriptsAttempted: i},
		})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListRuns_EmptyStore(t *testing.T) {
	t.Parallel()

	runs, err := newTestStore(t).ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunFailures_UnknownRun(t *testing.T) {
	t.Parallel()

	failures, err := newTestStore(t).RunFailures("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, failures)
}
