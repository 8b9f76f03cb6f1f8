// Package appshell is the process wrapper shared by hmmkit binaries: it turns
// SIGINT/SIGTERM into context cancellation and owns os.Exit.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is an application entry point returning a process exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// ExitCanceled is reported when a signal cancelled an otherwise clean run.
const ExitCanceled = 130

// Main runs run with the process arguments and exits with its code.
func Main(run RunFunc) {
	os.Exit(Run(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Run calls run under a signal-aware context. A run that was interrupted but
// still reports success is normalised to ExitCanceled.
func Run(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = ExitCanceled
	}
	return code
}
