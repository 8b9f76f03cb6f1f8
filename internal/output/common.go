package output

import (
	"strings"

	"hmmkit/internal/hmmer"
)

// Output formats understood by the writers.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Column names in report order. Keep these as the single source of truth for
// TSV headers.
var (
	TblColumns = []string{
		"target_name", "target_accession", "query_name", "query_accession",
		"full_evalue", "full_score", "full_bias",
		"best_evalue", "best_score", "best_bias",
		"exp", "reg", "clu", "ov", "env", "dom", "rep", "inc",
		"description",
	}
	DomColumns = []string{
		"target_name", "target_accession", "target_length",
		"query_name", "query_accession", "query_length",
		"full_evalue", "full_score", "full_bias",
		"dom", "ndom", "c_evalue", "i_evalue", "dom_score", "dom_bias",
		"hmm_from", "hmm_to", "ali_from", "ali_to", "env_from", "env_to",
		"acc", "description",
	}
	GCColumns = []string{"sequence_id", "window", "gc", "coverage", "marker_size"}
)

// HitHeader returns the TSV header row for mode.
func HitHeader(mode hmmer.Mode) string {
	if mode == hmmer.ModeDom {
		return strings.Join(DomColumns, "\t")
	}
	return strings.Join(TblColumns, "\t")
}

// GCHeader is the TSV header row for GC points.
var GCHeader = strings.Join(GCColumns, "\t")

// Row is a parsed hit together with the report it came from.
type Row struct {
	Source string
	Hit    hmmer.Hit
}
