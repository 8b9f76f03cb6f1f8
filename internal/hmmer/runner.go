package hmmer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Binaries names the HMMER executables. Bare names are looked up in $PATH.
type Binaries struct {
	Search string
	Align  string
	Fetch  string
}

// DefaultBinaries uses the stock HMMER3 program names.
var DefaultBinaries = Binaries{
	Search: "hmmsearch",
	Align:  "hmmalign",
	Fetch:  "hmmfetch",
}

// Runner issues HMMER commands for a single Mode. It holds no mutable state
// and is safe for concurrent use.
type Runner struct {
	mode   Mode
	bins   Binaries
	exec   Executor
	logger *slog.Logger
}

// NewRunner checks that the binary serving mode runs with -h and returns a
// Runner bound to mode. A nil exec uses ExecExecutor; a nil logger discards.
func NewRunner(ctx context.Context, mode Mode, bins Binaries, exec Executor, logger *slog.Logger) (*Runner, error) {
	if exec == nil {
		exec = ExecExecutor{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Runner{mode: mode, bins: bins, exec: exec, logger: logger}

	bin, err := r.binary()
	if err != nil {
		return nil, err
	}
	if err := exec.Exec(ctx, bin, []string{"-h"}, io.Discard); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: running %s -h: %v (is it in your PATH?)", ErrToolNotFound, bin, err)
	}
	return r, nil
}

func (r *Runner) Mode() Mode { return r.mode }

func (r *Runner) binary() (string, error) {
	switch {
	case r.mode.Tabular():
		return r.bins.Search, nil
	case r.mode == ModeAlign:
		return r.bins.Align, nil
	case r.mode == ModeFetch:
		return r.bins.Fetch, nil
	}
	return "", fmt.Errorf("%w: mode %s not understood", ErrModeMismatch, r.mode)
}

// Search runs hmmsearch, writing the table selected by the Runner's mode to
// tableOut and the full report to reportOut. extra is inserted before the
// positional arguments.
func (r *Runner) Search(ctx context.Context, db, query, tableOut, reportOut string, extra []string) error {
	if !r.mode.Tabular() {
		return fmt.Errorf("%w: mode %s not compatible with search", ErrModeMismatch, r.mode)
	}
	args := []string{"--" + r.mode.String(), tableOut}
	args = append(args, extra...)
	args = append(args, db, query)
	return r.run(ctx, r.bins.Search, args, reportOut, false)
}

// Align runs hmmalign with the given --outformat, writing to outPath. When
// appendOut is set the alignment is appended to an existing file.
func (r *Runner) Align(ctx context.Context, db, query, outPath string, appendOut bool, format string, trim bool) error {
	if r.mode != ModeAlign {
		return fmt.Errorf("%w: mode %s not compatible with align", ErrModeMismatch, r.mode)
	}
	var args []string
	if trim {
		args = append(args, "--trim")
	}
	args = append(args, "--outformat", format, db, query)
	return r.run(ctx, r.bins.Align, args, outPath, appendOut)
}

// Fetch runs hmmfetch to copy the model named key out of db into outPath.
func (r *Runner) Fetch(ctx context.Context, db, key, outPath string) error {
	if r.mode != ModeFetch {
		return fmt.Errorf("%w: mode %s not compatible with fetch", ErrModeMismatch, r.mode)
	}
	return r.run(ctx, r.bins.Fetch, []string{db, key}, outPath, false)
}

func (r *Runner) run(ctx context.Context, bin string, args []string, outPath string, appendOut bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendOut {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	out, err := os.OpenFile(outPath, flags, 0o644)
	if err != nil {
		return err
	}

	r.logger.Debug("running", "cmd", bin+" "+strings.Join(args, " "), "stdout", outPath)
	runErr := r.exec.Exec(ctx, bin, args, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
