package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hmmkit/internal/cliutil"
	"hmmkit/internal/cmdutil"
	"hmmkit/internal/hmmer"
	"hmmkit/internal/logging"
	"hmmkit/internal/output"
	"hmmkit/internal/runutil"
	"hmmkit/internal/writers"
)

type parseOptions struct {
	mode     string
	lenient  bool
	format   string
	noHeader bool
	maxEval  float64
}

func newParseCmd(e *env) *cobra.Command {
	var o parseOptions
	cmd := &cobra.Command{
		Use:   "parse [flags] <table>...",
		Short: "Parse --tblout/--domtblout tables into TSV, JSON or JSONL",
		Example: `  hmmkit parse --mode dom bins/*.domtblout
  hmmsearch --tblout /dev/stdout -o /dev/null db.hmm q.faa | hmmkit parse --mode tbl --output jsonl -`,
		Args: positional(1, -1, "<table>..."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.parse(cmd.Context(), o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.mode, "mode", "dom", "table kind: tbl or dom")
	f.BoolVar(&o.lenient, "lenient", false, "skip malformed lines with a warning instead of failing")
	f.StringVar(&o.format, "output", output.FormatTSV, "output format: tsv, json or jsonl")
	f.BoolVar(&o.noHeader, "no-header", false, "omit the TSV header row")
	f.Float64Var(&o.maxEval, "max-evalue", 0, "keep hits with full-sequence E-value <= this (0 = keep all)")
	return cmd
}

func (e *env) parse(ctx context.Context, o parseOptions, args []string) error {
	mode, err := hmmer.ParseMode(o.mode)
	if err != nil {
		return err
	}
	if !mode.Tabular() {
		return usagef("--mode must be tbl or dom, got %q", o.mode)
	}
	switch o.format {
	case output.FormatTSV, output.FormatJSON, output.FormatJSONL:
	default:
		return usagef("unknown --output %q (want tsv, json or jsonl)", o.format)
	}
	if o.maxEval < 0 {
		return usagef("--max-evalue must be >= 0")
	}
	files, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return usageError{err}
	}

	outw := bufio.NewWriter(e.stdout)
	in, done := writers.StartHitWriter(outw, o.format, mode, !o.noHeader, runutil.WriterBuffer(e.cfg.Threads))

	var total int
	var perr error
	for _, path := range files {
		n, err := e.parseFile(ctx, path, mode, o, in)
		total += n
		if err != nil {
			perr = err
			break
		}
	}
	close(in)

	if werr := <-done; werr != nil {
		return werr
	}
	if err := outw.Flush(); err != nil {
		return err
	}
	if perr != nil {
		return perr
	}
	logging.FromContext(ctx).Debug("parsed tables", "files", len(files), "hits", total)
	return nil
}

func (e *env) parseFile(ctx context.Context, path string, mode hmmer.Mode, o parseOptions, in chan<- output.Row) (int, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer fh.Close()
		r = fh
	}

	var opts []hmmer.ParserOption
	if o.lenient {
		opts = append(opts, hmmer.Lenient(logging.FromContext(ctx).With("file", path)))
	}
	p, err := hmmer.NewParser(r, mode, opts...)
	if err != nil {
		return 0, err
	}

	n, err := cmdutil.RunStream(ctx, p.Next,
		func(h hmmer.Hit) (bool, output.Row, error) {
			if o.maxEval > 0 && fullEValue(h) > o.maxEval {
				return false, output.Row{}, nil
			}
			return true, output.Row{Source: path, Hit: h}, nil
		},
		func(row output.Row) error {
			select {
			case in <- row:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	if p.Skipped() > 0 {
		cmdutil.Warnf(e.stderr, e.cfg.Quiet, "%s: skipped %d malformed line(s)", path, p.Skipped())
	}
	if err != nil {
		return n, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return n, nil
}

func fullEValue(h hmmer.Hit) float64 {
	switch v := h.(type) {
	case hmmer.TblHit:
		return v.FullEValue
	case hmmer.DomHit:
		return v.FullEValue
	}
	return 0
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
