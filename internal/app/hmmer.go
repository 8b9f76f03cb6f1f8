package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"hmmkit/internal/cmdutil"
	"hmmkit/internal/hmmer"
	"hmmkit/internal/logging"
)

func (e *env) runner(ctx context.Context, mode hmmer.Mode) (*hmmer.Runner, error) {
	return hmmer.NewRunner(ctx, mode, e.cfg.Binaries, e.exec, logging.FromContext(ctx))
}

func newSearchCmd(e *env) *cobra.Command {
	var (
		modeName  string
		tableOut  string
		reportOut string
	)
	cmd := &cobra.Command{
		Use:   "search [flags] <hmm-db> <seq-file> [-- hmmsearch-args...]",
		Short: "Run hmmsearch and write a --tblout or --domtblout table",
		Example: `  hmmkit search --mode dom --table-out bin1.domtblout Pfam-A.hmm bin1.faa
  hmmkit search --mode tbl --table-out bin1.tblout --report-out bin1.txt db.hmm bin1.faa -- -E 1e-5 --cpu 4`,
		Args: positional(2, 2, "<hmm-db> <seq-file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mode, err := hmmer.ParseMode(modeName)
			if err != nil {
				return err
			}
			if !mode.Tabular() {
				return usagef("--mode must be tbl or dom, got %q", modeName)
			}
			var extra []string
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				args, extra = args[:at], args[at:]
			}
			r, err := e.runner(ctx, mode)
			if err != nil {
				return err
			}
			if err := r.Search(ctx, args[0], args[1], tableOut, reportOut, extra); err != nil {
				return err
			}
			e.summarizeTable(ctx, mode, tableOut)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&modeName, "mode", "dom", "table kind: tbl (per sequence) or dom (per domain)")
	f.StringVar(&tableOut, "table-out", "", "tabular output file")
	f.StringVar(&reportOut, "report-out", os.DevNull, "file receiving the human-readable report")
	_ = cmd.MarkFlagRequired("table-out")
	return cmd
}

// summarizeTable logs how many hits a finished search wrote.
func (e *env) summarizeTable(ctx context.Context, mode hmmer.Mode, path string) {
	fh, err := os.Open(path)
	if err != nil {
		cmdutil.Warnf(e.stderr, e.cfg.Quiet, "cannot read %s: %v", path, err)
		return
	}
	defer fh.Close()

	p, err := hmmer.NewParser(fh, mode, hmmer.Lenient(logging.FromContext(ctx)))
	if err != nil {
		return
	}
	n, targets := 0, map[string]struct{}{}
	for {
		h, err := p.Next()
		if err != nil {
			break
		}
		n++
		targets[h.Fields()[0]] = struct{}{}
	}
	logging.FromContext(ctx).Info("search finished", "table", path, "mode", mode.String(), "hits", n, "targets", len(targets))
	if p.Skipped() > 0 {
		cmdutil.Warnf(e.stderr, e.cfg.Quiet, "%d malformed line(s) in %s", p.Skipped(), path)
	}
}

func newAlignCmd(e *env) *cobra.Command {
	var (
		out       string
		appendOut bool
		format    string
		noTrim    bool
	)
	cmd := &cobra.Command{
		Use:     "align [flags] <hmm> <seq-file>",
		Short:   "Align sequences to a profile HMM with hmmalign",
		Example: `  hmmkit align -o PF00005.sto --outformat Stockholm PF00005.hmm hits.faa`,
		Args:    positional(2, 2, "<hmm> <seq-file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := e.runner(ctx, hmmer.ModeAlign)
			if err != nil {
				return err
			}
			return r.Align(ctx, args[0], args[1], out, appendOut, format, !noTrim)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "", "alignment output file")
	f.BoolVar(&appendOut, "append", false, "append to the output file instead of truncating it")
	f.StringVar(&format, "outformat", "PSIBLAST", "hmmalign --outformat value")
	f.BoolVar(&noTrim, "no-trim", false, "do not pass --trim")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newFetchCmd(e *env) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "fetch [flags] <hmm-db> <key>",
		Short:   "Copy one model out of an HMM database with hmmfetch",
		Example: `  hmmkit fetch -o PF00005.hmm Pfam-A.hmm PF00005.27`,
		Args:    positional(2, 2, "<hmm-db> <key>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := e.runner(ctx, hmmer.ModeFetch)
			if err != nil {
				return err
			}
			return r.Fetch(ctx, args[0], args[1], out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "model output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
