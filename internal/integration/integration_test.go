// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmmkit/internal/app"
)

const fakeSearch = `#!/bin/sh
[ "$1" = "-h" ] && exit 0
table="$2"
cat > "$table" <<'EOF_TABLE'
# target name  accession  tlen query name  accession  qlen  E-value  score  bias  #  of  c-Evalue  i-Evalue  score  bias  from  to  from  to  from  to  acc  description of target
contig_1_7  -  412  PF00005.27  PF00005.27  137  1.1e-30  105.2  0.1  1  2  2.2e-20  4.4e-17  60.1  0.0  1  137  20  160  18  162  0.95  ATP-binding   cassette
contig_1_7  -  412  PF00005.27  PF00005.27  137  1.1e-30  105.2  0.1  2  2  3.1e-12  6.2e-09  35.0  0.0  5  130  200  330  199  333  0.90  ATP-binding cassette
contig_2_1  -  98  PF00009.27  -  187  0.5  3.1  0.0  1  1  0.5  0.9  2.0  0.0  40  80  10  50  8  52  0.70  -
#
# Program:         hmmsearch
EOF_TABLE
echo "# hmmsearch :: args $*"
`

const fakeFetch = `#!/bin/sh
[ "$1" = "-h" ] && exit 0
case "$2" in
MISSING*) echo "Failed to find key $2" >&2; exit 1 ;;
esac
printf 'HMMER3/f [3.3]\nNAME  %s\n//\n' "$2"
`

const fakeAlign = `#!/bin/sh
[ "$1" = "-h" ] && exit 0
echo "# aligned: $*"
`

type fakes struct {
	dir                  string
	search, fetch, align string
}

func (f fakes) flags() []string {
	return []string{"--hmmsearch", f.search, "--hmmfetch", f.fetch, "--hmmalign", f.align}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o755))
	return p
}

func fakeHMMER(t *testing.T) fakes {
	t.Helper()
	dir := t.TempDir()
	return fakes{
		dir:    dir,
		search: writeScript(t, dir, "hmmsearch", fakeSearch),
		fetch:  writeScript(t, dir, "hmmfetch", fakeFetch),
		align:  writeScript(t, dir, "hmmalign", fakeAlign),
	}
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestSearchThenParse(t *testing.T) {
	f := fakeHMMER(t)
	work := t.TempDir()
	table := filepath.Join(work, "bin1.domtblout")
	report := filepath.Join(work, "bin1.txt")

	argv := append([]string{"search", "--log-level", "warn", "--mode", "dom",
		"--table-out", table, "--report-out", report}, f.flags()...)
	argv = append(argv, "Pfam-A.hmm", "bin1.faa", "--", "-E", "0.1")
	code, _, stderr := run(t, argv...)
	require.Equal(t, 0, code, stderr)

	rep, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "# hmmsearch :: args --domtblout "+table+" -E 0.1 Pfam-A.hmm bin1.faa\n", string(rep))

	code, stdout, stderr := run(t, "parse", "--mode", "dom", "--output", "jsonl", table)
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)

	var first, last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.Equal(t, "ATP-binding cassette", first["description"])
	assert.Equal(t, "PF00009.27", last["query_accession"], "'-' accession falls back to the query name")
	assert.Equal(t, "-", last["target_accession"])
	assert.Equal(t, table, last["source_file"])

	code, stdout, _ = run(t, "parse", "--mode", "dom", "--max-evalue", "1e-5", "--no-header", table)
	require.Equal(t, 0, code)
	assert.Equal(t, 2, strings.Count(stdout, "\n"))
	assert.True(t, strings.HasPrefix(stdout, "contig_1_7\t-\t412\tPF00005.27\t"))
}

func TestParseStrictAndLenient(t *testing.T) {
	dir := t.TempDir()
	tbl := filepath.Join(dir, "x.tblout")
	require.NoError(t, os.WriteFile(tbl, []byte(
		"A - B - 1.0 2.0 3.0 4.0 5.0 6.0 7.0 8 9 10 11 12 13 14 desc words here\n"+
			"truncated line\n"+
			"C - D - 1.0 2.0 3.0 4.0 5.0 6.0 7.0 8 9 10 11 12 13 14 -\n"), 0o644))

	code, _, stderr := run(t, "parse", "--mode", "tbl", tbl)
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "line 2: 2 fields, need at least 19")

	code, stdout, stderr := run(t, "parse", "--mode", "tbl", "--lenient", "--log-level", "error", filepath.Join(dir, "*.tblout"))
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 3, strings.Count(stdout, "\n"), "header + 2 records")
	assert.Contains(t, stdout, "A\t-\tB\t-\t1.0\t2.0\t3.0\t4.0\t5.0\t6.0\t7.0\t8\t9\t10\t11\t12\t13\t14\tdesc words here\n")
	assert.Contains(t, stderr, "skipped 1 malformed line(s)")

	code, stdout, _ = run(t, "parse", "--mode", "tbl", "--lenient", "-q", "--log-level", "error", tbl)
	require.Equal(t, 0, code)
	assert.NotEmpty(t, stdout)
}

func TestExtractEndToEnd(t *testing.T) {
	f := fakeHMMER(t)
	work := t.TempDir()
	stage := t.TempDir()
	out := filepath.Join(work, "markers.hmm")
	ids := filepath.Join(work, "ids.txt")
	require.NoError(t, os.WriteFile(ids, []byte("# markers\nPF00009.27 EF-Tu\n\nTIGR00001\n"), 0o644))

	argv := append([]string{"extract", "-t", "2", "--tmp-dir", stage, "-o", out, "--ids", ids}, f.flags()...)
	argv = append(argv, "Pfam-A.hmm", "PF00005.27", "PF00009.27")
	code, stdout, stderr := run(t, argv...)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Finished extracting 3 of 3 (100.00%) HMM models.")
	assert.Contains(t, stderr, "PF00009.27 listed more than once")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var names []string
	for _, ln := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(ln, "NAME") {
			names = append(names, strings.Fields(ln)[1])
		}
	}
	sort.Strings(names)
	assert.Equal(t, []string{"PF00005.27", "PF00009.27", "TIGR00001"}, names)
	assert.Equal(t, 3, strings.Count(string(data), "//\n"))

	left, err := os.ReadDir(stage)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestExtractFetchFailureExit3(t *testing.T) {
	f := fakeHMMER(t)
	stage := t.TempDir()
	argv := append([]string{"extract", "--no-progress", "--tmp-dir", stage, "-o", filepath.Join(t.TempDir(), "o.hmm")}, f.flags()...)
	argv = append(argv, "db.hmm", "PF00001", "MISSING_1", "PF00002")
	code, _, stderr := run(t, argv...)
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "exited with status 1: Failed to find key MISSING_1")

	left, err := os.ReadDir(stage)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestMissingBinary(t *testing.T) {
	code, _, stderr := run(t, "fetch", "--hmmfetch", filepath.Join(t.TempDir(), "nope"),
		"-o", filepath.Join(t.TempDir(), "m.hmm"), "db", "PF00001")
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "hmmer tool not found")
}

func TestBinaryFromEnvironment(t *testing.T) {
	f := fakeHMMER(t)
	t.Setenv("HMMKIT_BIN_HMMFETCH", f.fetch)
	out := filepath.Join(t.TempDir(), "m.hmm")
	code, _, stderr := run(t, "fetch", "-o", out, "db.hmm", "PF00005.27")
	require.Equal(t, 0, code, stderr)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NAME  PF00005.27")
}

func TestAlignAppends(t *testing.T) {
	f := fakeHMMER(t)
	out := filepath.Join(t.TempDir(), "aln.txt")
	base := append([]string{"align", "-o", out}, f.flags()...)

	code, _, stderr := run(t, append(base, "m.hmm", "a.faa")...)
	require.Equal(t, 0, code, stderr)
	code, _, stderr = run(t, append(append([]string{}, base...), "--append", "--no-trim", "--outformat", "Stockholm", "m.hmm", "b.faa")...)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# aligned: --trim --outformat PSIBLAST m.hmm a.faa\n# aligned: --outformat Stockholm m.hmm b.faa\n", string(data))
}

func TestGCBias(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "bin.fna")
	cov := filepath.Join(dir, "bin.cov")
	require.NoError(t, os.WriteFile(fa, []byte(">c2\nGGGGAAAA\nCC\n>c1\nGCAT\n"), 0o644))
	require.NoError(t, os.WriteFile(cov, []byte("c1\t5\nc2\t15\t10,20\n"), 0o644))

	code, stdout, stderr := run(t, "gcbias", "--log-level", "warn", "--coverage", cov, "--window", "4", fa)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "sequence_id\twindow\tgc\tcoverage\tmarker_size\n"+
		"c2\t0\t1\t10\t10\n"+
		"c2\t1\t0\t20\t10\n"+
		"# level=window window=4 points=2 mean_gc=50.00% mean_coverage=15.00\n", stdout)

	code, stdout, stderr = run(t, "gcbias", "--log-level", "warn", "--coverage", cov, "--level", "sequence", "--output", "json", "--window", "4", fa)
	require.Equal(t, 0, code, stderr)
	var rep struct {
		Points []struct {
			SequenceID string  `json:"sequence_id"`
			Window     int     `json:"window"`
			MarkerSize float64 `json:"marker_size"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	require.Len(t, rep.Points, 2)
	assert.Equal(t, "c1", rep.Points[0].SequenceID)
	assert.Equal(t, -1, rep.Points[0].Window)
	assert.Equal(t, 10.0, rep.Points[0].MarkerSize)
	assert.Greater(t, rep.Points[1].MarkerSize, 10.0)
}

func TestUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown command":      {"frobnicate"},
		"missing table-out":    {"search", "db", "q"},
		"too few args":         {"fetch", "-o", "x", "db"},
		"bad flag":             {"parse", "--nope", "x"},
		"non-table parse mode": {"parse", "--mode", "align", "x"},
		"unknown parse mode":   {"parse", "--mode", "hmm", "x"},
		"bad log level":        {"parse", "--log-level", "loud", "x"},
		"no model ids":         {"extract", "-o", "x", "db"},
		"bad window":           {"gcbias", "--coverage", "c", "--window", "0", "x"},
	}
	for name, argv := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, stderr := run(t, argv...)
			assert.Equal(t, 2, code, stderr)
			assert.Contains(t, stderr, "error:")
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, stdout, _ := run(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "extract")
	assert.Contains(t, stdout, "gcbias")

	code, stdout, _ = run(t, "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "hmmkit version "))
}
