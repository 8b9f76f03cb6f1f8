// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"

	"hmmkit/internal/gcbias"
	"hmmkit/internal/hmmer"
)

// StreamTSV writes rows as they arrive, one tab-separated line per hit with
// the columns exactly as the report had them.
func StreamTSV(w io.Writer, in <-chan Row, mode hmmer.Mode, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, HitHeader(mode)); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := io.WriteString(w, r.Hit.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteGCTSV writes one line per point followed by a comment line with the
// axis means.
func WriteGCTSV(w io.Writer, r GCReport, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, GCHeader); err != nil {
			return err
		}
	}
	for _, p := range r.Points {
		_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			p.SeqID, p.Window, ff(p.GC), ff(p.Coverage), ff(p.Size))
		if err != nil {
			return err
		}
	}
	return writeGCSummary(w, r)
}

func writeGCSummary(w io.Writer, r GCReport) error {
	s := gcbias.Summarize(r.Points)
	_, err := fmt.Fprintf(w, "# level=%s window=%d points=%d mean_gc=%.2f%% mean_coverage=%.2f\n",
		r.Level, r.WindowSize, s.Points, s.MeanGC, s.MeanCoverage)
	return err
}

func ff(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
