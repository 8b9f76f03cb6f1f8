package hmmer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// waitDelay bounds how long Exec waits for output pipes after the process is
// killed on cancellation.
const waitDelay = 2 * time.Second

// Executor runs one external command to completion. stdout receives the
// command's standard output; a nonzero exit is returned as *ExitError.
type Executor interface {
	Exec(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// ExecExecutor runs commands with os/exec. Arguments are passed as a vector,
// never through a shell.
type ExecExecutor struct {
	// Stderr, when set, also receives the command's standard error.
	Stderr io.Writer
}

func (x ExecExecutor) Exec(ctx context.Context, name string, args []string, stdout io.Writer) error {
	var errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	cmd.Stdout = stdout
	if x.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&errBuf, x.Stderr)
	} else {
		cmd.Stderr = &errBuf
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{
			Cmd:    append([]string{name}, args...),
			Code:   ee.ExitCode(),
			Stderr: errBuf.String(),
		}
	}
	return err
}
