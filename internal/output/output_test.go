package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmmkit/internal/gcbias"
	"hmmkit/internal/hmmer"
)

const tblLine = "PF00005.27\t-\tgi|1|ref\t-\t1.2e-30\t105.1\t0.3\t2e-30\t104.4\t0.3\t1.3\t1\t0\t0\t1\t1\t1\t1\tABC transporter"

func tblHit(t *testing.T) hmmer.TblHit {
	t.Helper()
	hits, err := hmmer.ReadTbl(strings.NewReader(strings.ReplaceAll(tblLine, "\t", "  ") + "\n"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	return hits[0]
}

func TestHeadersMatchRecordArity(t *testing.T) {
	assert.Len(t, TblColumns, 19)
	assert.Len(t, DomColumns, 23)
	assert.True(t, strings.HasPrefix(HitHeader(hmmer.ModeDom), "target_name\ttarget_accession\ttarget_length"))
	assert.True(t, strings.HasSuffix(HitHeader(hmmer.ModeTbl), "\tinc\tdescription"))
}

func TestStreamTSVRoundTripsColumns(t *testing.T) {
	in := make(chan Row, 1)
	in <- Row{Source: "a.tbl", Hit: tblHit(t)}
	close(in)

	var b bytes.Buffer
	require.NoError(t, StreamTSV(&b, in, hmmer.ModeTbl, true))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, HitHeader(hmmer.ModeTbl), lines[0])
	assert.Equal(t, tblLine, lines[1])
}

func TestWriteJSONUsesWireNames(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteJSON(&b, []Row{{Source: "a.tbl", Hit: tblHit(t)}}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "PF00005.27", got[0]["target_name"])
	assert.Equal(t, "gi|1|ref", got[0]["query_accession"], "query accession defaults to the query name")
	assert.Equal(t, 105.1, got[0]["full_score"])
	assert.Equal(t, "a.tbl", got[0]["source_file"])
	assert.Equal(t, "ABC transporter", got[0]["description"])
}

func TestGCReportRendering(t *testing.T) {
	r := GCReport{Level: "sequence", WindowSize: 5000, Points: []gcbias.Point{
		{SeqID: "c1", Window: -1, GC: 0.5, Coverage: 10, Size: 10},
		{SeqID: "c2", Window: -1, GC: 0.25, Coverage: 20, Size: 210},
	}}

	var b bytes.Buffer
	require.NoError(t, WriteGCTSV(&b, r, true))
	assert.Equal(t, GCHeader+"\n"+
		"c1\t-1\t0.5\t10\t10\n"+
		"c2\t-1\t0.25\t20\t210\n"+
		"# level=sequence window=5000 points=2 mean_gc=37.50% mean_coverage=15.00\n", b.String())

	b.Reset()
	require.NoError(t, WriteGCJSON(&b, r))
	var got map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, 37.5, got["mean_gc_percent"])
	assert.Len(t, got["points"], 2)
}
