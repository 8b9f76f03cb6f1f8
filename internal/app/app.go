// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hmmkit/internal/cmdutil"
	"hmmkit/internal/config"
	"hmmkit/internal/hmmer"
	"hmmkit/internal/logging"
	"hmmkit/internal/version"
	"hmmkit/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitFailure  = 3
	ExitCanceled = 130
)

// env is the state shared by every subcommand of one invocation.
type env struct {
	stdout, stderr io.Writer
	configPath     string
	cfg            config.Config

	// exec overrides the subprocess executor (nil = os/exec).
	exec hmmer.Executor
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "hmmkit",
		Short: "Run HMMER searches, parse tabular hits, extract models and profile GC bias",
		Long: `hmmkit – HMMER3 toolkit

Wraps hmmsearch, hmmalign and hmmfetch, parses --tblout/--domtblout reports,
extracts many profile HMMs from a model database in parallel, and computes
GC-content vs. coverage data for genome bins.`,
		Version:           version.Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(e.configPath, cmd.Flags())
			if err != nil {
				return usageError{err}
			}
			e.cfg = cfg
			logger := logging.New(cfg.LogLevel, cfg.LogFormat, e.stderr)
			if cfg.File != "" {
				logger.Debug("loaded config", "file", cfg.File)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
	}
	root.SetVersionTemplate("hmmkit version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "config file (default ./hmmkit.yaml if present)")
	pf.IntP("threads", "t", 0, "worker threads (0 = all CPUs)")
	pf.String("tmp-dir", "", "directory for staged temporary files (default system temp)")
	pf.String("log-level", "info", "log level: "+strings.Join(logging.Levels, ", "))
	pf.String("log-format", "text", "log format: "+strings.Join(logging.Formats, ", "))
	pf.BoolP("quiet", "q", false, "suppress warnings and progress output")
	pf.String("hmmsearch", hmmer.DefaultBinaries.Search, "hmmsearch executable")
	pf.String("hmmalign", hmmer.DefaultBinaries.Align, "hmmalign executable")
	pf.String("hmmfetch", hmmer.DefaultBinaries.Fetch, "hmmfetch executable")

	root.AddCommand(
		newSearchCmd(e),
		newAlignCmd(e),
		newFetchCmd(e),
		newExtractCmd(e),
		newParseCmd(e),
		newGCBiasCmd(e),
		newVersionCmd(e),
	)
	return root
}

// RunContext runs hmmkit with argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return run(parent, &env{stdout: stdout, stderr: stderr}, argv)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, e *env, argv []string) int {
	root := newRootCmd(e)
	root.SetArgs(argv)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	cmd, err := root.ExecuteContextC(ctx)
	return exitCode(e.stderr, cmd, err)
}

func exitCode(stderr io.Writer, cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitOK
	}
	var ue usageError
	switch {
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.As(err, &ue), errors.Is(err, hmmer.ErrModeMismatch), isCobraUsage(err):
		cmdutil.Errorf(stderr, "%v", err)
		if cmd != nil {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
		return ExitUsage
	}
	cmdutil.Errorf(stderr, "%v", err)
	return ExitFailure
}

// isCobraUsage recognises the argument errors cobra raises itself.
func isCobraUsage(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "required flag(s)") ||
		strings.HasPrefix(msg, "invalid argument")
}

// positional returns a cobra.PositionalArgs that accepts between lo and hi
// arguments before any "--" (hi < 0 = unbounded). names describes them.
func positional(lo, hi int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if at := cmd.ArgsLenAtDash(); at >= 0 {
			args = args[:at]
		}
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			return usagef("%s expects %s, got %d argument(s)", cmd.CommandPath(), names, len(args))
		}
		return nil
	}
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hmmkit version",
		Args:  positional(0, 0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(e.stdout, "hmmkit version %s\n", version.Version)
			return err
		},
	}
}
