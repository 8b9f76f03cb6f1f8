package hmmer

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecExecutorCapturesStdout(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	err := ExecExecutor{}.Exec(context.Background(), "sh", []string{"-c", "printf 'HMMER3/f\\n'"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "HMMER3/f\n", out.String())
}

func TestExecExecutorExitError(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	err := ExecExecutor{}.Exec(context.Background(), "sh", []string{"-c", "echo oops >&2; exit 3"}, &out)

	var ee *ExitError
	require.True(t, errors.As(err, &ee), "want *ExitError, got %v", err)
	assert.Equal(t, 3, ee.Code)
	assert.Equal(t, "oops\n", ee.Stderr)
}

func TestExecExecutorNoShellInterpolation(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	// $1 is handed to the script verbatim; a shell-built command line would expand it.
	err := ExecExecutor{}.Exec(context.Background(), "sh", []string{"-c", `printf '%s' "$1"`, "sh", "a b; $(echo x) > /dev/null"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a b; $(echo x) > /dev/null", out.String())
}

func TestExecExecutorMissingBinary(t *testing.T) {
	err := ExecExecutor{}.Exec(context.Background(), "hmmkit-definitely-not-installed", nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))

	_, err = NewRunner(context.Background(), ModeFetch, Binaries{Fetch: "hmmkit-definitely-not-installed"}, nil, nil)
	assert.ErrorIs(t, err, ErrToolNotFound)
}
