package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and returns everything it
// wrote to stdout and stderr. Tests using it must not run in parallel
// because the command tree is package state.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}
