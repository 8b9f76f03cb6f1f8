package app

import (
	"github.com/spf13/cobra"

	"hmmkit/internal/cmdutil"
	"hmmkit/internal/extract"
	"hmmkit/internal/hmmer"
	"hmmkit/internal/logging"
)

func newExtractCmd(e *env) *cobra.Command {
	var (
		out        string
		idsFile    string
		noProgress bool
	)
	cmd := &cobra.Command{
		Use:   "extract [flags] <hmm-db> [model-id...]",
		Short: "Fetch many models from an HMM database in parallel into one file",
		Example: `  hmmkit extract -t 8 -o markers.hmm --ids marker_ids.txt Pfam-A.hmm
  hmmkit extract -o two.hmm Pfam-A.hmm PF00005.27 PF00009.27`,
		Args: positional(1, -1, "<hmm-db> [model-id...]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids := args[1:]
			if idsFile != "" {
				more, err := extract.LoadIDs(idsFile)
				if err != nil {
					return err
				}
				ids = append(ids, more...)
			}
			ids = dedupe(ids, func(id string) {
				cmdutil.Warnf(e.stderr, e.cfg.Quiet, "model %s listed more than once; fetching it once", id)
			})
			if len(ids) == 0 {
				return usagef("no model ids given (pass them as arguments or with --ids)")
			}

			r, err := e.runner(ctx, hmmer.ModeFetch)
			if err != nil {
				return err
			}
			x := extract.New(r, extract.Options{
				Threads:  e.cfg.Threads,
				TempDir:  e.cfg.TmpDir,
				Progress: e.stdout,
			}, logging.FromContext(ctx))
			return x.Extract(ctx, args[0], ids, out, !noProgress && !e.cfg.Quiet)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "", "combined model output file")
	f.StringVar(&idsFile, "ids", "", "file of model ids, one per line ('-' = stdin)")
	f.BoolVar(&noProgress, "no-progress", false, "do not print the progress line")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// dedupe keeps the first occurrence of each id, calling dup for repeats.
func dedupe(ids []string, dup func(string)) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if seen[id] {
			dup(id)
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
