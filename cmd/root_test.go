package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/pickx/pkg/prompt"
)

func resetRootCmdState(t *testing.T) {
	t.Helper()
	rootCmd.SetArgs(nil)
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
}

func TestRootRejectsConflictingWindowFlags(t *testing.T) {
	resetRootCmdState(t)
	rootCmd.SetArgs([]string{"--limit", "2", "--tail", "3", "choices.yaml"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRootMissingChoicesFile(t *testing.T) {
	resetRootCmdState(t)
	rootCmd.SetArgs([]string{"does-not-exist.yaml"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read choices")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 130, ExitCode(prompt.ErrCanceled))
	assert.Equal(t, 1, ExitCode(ErrEmptyResult))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestPrintResultSingle(t *testing.T) {
	var buf bytes.Buffer
	err := printResult(&buf, prompt.Result{Value: "banana", Names: []string{"banana"}})
	require.NoError(t, err)
	assert.Equal(t, "banana\n", buf.String())
}

func TestPrintResultMulti(t *testing.T) {
	var buf bytes.Buffer
	res := prompt.Result{
		Multi:  true,
		Values: []any{"apple", "grape"},
		Names:  []string{"apple", "grape"},
	}
	require.NoError(t, printResult(&buf, res))
	assert.Equal(t, "apple\ngrape\n", buf.String())
}

func TestPrintResultEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := printResult(&buf, prompt.Result{Multi: true})
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Empty(t, buf.String())

	err = printResult(&buf, prompt.Result{})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestPrintResultJSONEmpty(t *testing.T) {
	flagJSON = true
	t.Cleanup(func() { flagJSON = false })

	// An empty selection must map to exit code 1 in JSON mode too, not
	// encode null/[] and exit 0.
	var buf bytes.Buffer
	err := printResult(&buf, prompt.Result{Multi: true, Values: []any{}})
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Empty(t, buf.String())

	err = printResult(&buf, prompt.Result{})
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Empty(t, buf.String())
}

func TestPrintResultJSON(t *testing.T) {
	flagJSON = true
	t.Cleanup(func() { flagJSON = false })

	var buf bytes.Buffer
	res := prompt.Result{Multi: true, Values: []any{"a", "b"}}
	require.NoError(t, printResult(&buf, res))

	var values []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &values))
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestPrintResultNonString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, prompt.Result{Value: 42}))
	assert.Equal(t, "42\n", buf.String())
}
