// Package gcbias computes the data behind GC-content vs. coverage plots used
// to spot GC bias in a genome bin: GC of fixed-size windows against window
// coverage, and GC of whole sequences against mean coverage with a marker size
// that grows with sequence length.
package gcbias

import (
	"fmt"
	"math"
	"sort"

	"hmmkit/internal/fasta"
)

// DefaultWindow is the window size used when none is given.
const DefaultWindow = 5000

// SeqGC is the GC content of one sequence.
type SeqGC struct {
	ID      string
	Length  int
	GC      float64   // whole sequence
	Windows []float64 // consecutive full windows
}

// Profile holds SeqGC values sorted by ID.
type Profile []SeqGC

// BaseCount counts A, C, G and T (either case). Other symbols are ignored.
func BaseCount(seq []byte) (a, c, g, t int) {
	for _, b := range seq {
		switch b {
		case 'A', 'a':
			a++
		case 'C', 'c':
			c++
		case 'G', 'g':
			g++
		case 'T', 't':
			t++
		}
	}
	return
}

// GC returns (G+C)/(A+C+G+T). ok is false when seq has no A, C, G or T.
func GC(seq []byte) (gc float64, ok bool) {
	a, c, g, t := BaseCount(seq)
	n := a + c + g + t
	if n == 0 {
		return 0, false
	}
	return float64(g+c) / float64(n), true
}

// Windows returns the GC of consecutive windows [start, start+size) for as long
// as the window end stays strictly inside seq; the trailing remainder is not
// measured. Windows without any ACGT base count as 0.
func Windows(seq []byte, size int) []float64 {
	var out []float64
	if size <= 0 {
		return out
	}
	for start, end := 0, size; end < len(seq); start, end = end, end+size {
		gc, _ := GC(seq[start:end])
		out = append(out, gc)
	}
	return out
}

// Of computes the SeqGC of one record.
func Of(rec fasta.Record, window int) SeqGC {
	gc, _ := GC(rec.Seq)
	return SeqGC{ID: rec.ID, Length: len(rec.Seq), GC: gc, Windows: Windows(rec.Seq, window)}
}

// Compute builds a Profile from records.
func Compute(recs []fasta.Record, window int) (Profile, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window size must be > 0, got %d", window)
	}
	p := make(Profile, 0, len(recs))
	for _, r := range recs {
		p = append(p, Of(r, window))
	}
	return p.sorted()
}

// ComputeStream builds a Profile from a record stream as produced by
// fasta.Stream, keeping no sequence data in memory.
func ComputeStream(recs <-chan fasta.Record, errc <-chan error, window int) (Profile, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window size must be > 0, got %d", window)
	}
	var p Profile
	for r := range recs {
		p = append(p, Of(r, window))
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	return p.sorted()
}

func (p Profile) sorted() (Profile, error) {
	sort.Slice(p, func(i, j int) bool { return p[i].ID < p[j].ID })
	for i := 1; i < len(p); i++ {
		if p[i].ID == p[i-1].ID {
			return nil, fmt.Errorf("duplicate sequence id %q", p[i].ID)
		}
	}
	return p, nil
}

// Point is one scatter point. Window is -1 for whole-sequence points.
type Point struct {
	SeqID    string
	Window   int
	GC       float64
	Coverage float64
	Size     float64
}

// WindowPoints pairs each window's GC with the same window's coverage.
func WindowPoints(p Profile, cov Coverage) ([]Point, error) {
	var pts []Point
	for _, s := range p {
		c, ok := cov[s.ID]
		if !ok {
			return nil, fmt.Errorf("no coverage for sequence %q", s.ID)
		}
		if len(c.Windows) != len(s.Windows) {
			return nil, fmt.Errorf("sequence %q: %d GC windows but %d coverage windows", s.ID, len(s.Windows), len(c.Windows))
		}
		for i, gc := range s.Windows {
			pts = append(pts, Point{SeqID: s.ID, Window: i, GC: gc, Coverage: c.Windows[i], Size: windowMarker})
		}
	}
	return pts, nil
}

const (
	windowMarker = 10
	minMarker    = 10
	markerRange  = 200
)

// SequencePoints pairs each sequence's GC with its mean coverage. Marker size
// is log(length) shifted by the smallest value, divided by the largest and
// mapped onto [10, 210].
func SequencePoints(p Profile, cov Coverage) ([]Point, error) {
	pts := make([]Point, 0, len(p))
	logs := make([]float64, 0, len(p))
	for _, s := range p {
		c, ok := cov[s.ID]
		if !ok {
			return nil, fmt.Errorf("no coverage for sequence %q", s.ID)
		}
		pts = append(pts, Point{SeqID: s.ID, Window: -1, GC: s.GC, Coverage: c.Mean})
		logs = append(logs, math.Log(math.Max(float64(s.Length), 1)))
	}
	for i, size := range MarkerSizes(logs) {
		pts[i].Size = size
	}
	return pts, nil
}

// MarkerSizes maps log-lengths onto marker sizes.
func MarkerSizes(logLens []float64) []float64 {
	if len(logLens) == 0 {
		return nil
	}
	lo, hi := logLens[0], logLens[0]
	for _, v := range logLens[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]float64, len(logLens))
	for i, v := range logLens {
		if hi == 0 {
			out[i] = minMarker
			continue
		}
		out[i] = (v-lo)/hi*markerRange + minMarker
	}
	return out
}

// Summary carries the axis statistics of a point set.
type Summary struct {
	Points       int
	MeanGC       float64 // percent
	MeanCoverage float64
}

// Summarize returns mean GC (as a percentage) and mean coverage.
func Summarize(pts []Point) Summary {
	s := Summary{Points: len(pts)}
	if len(pts) == 0 {
		return s
	}
	for _, p := range pts {
		s.MeanGC += p.GC
		s.MeanCoverage += p.Coverage
	}
	n := float64(len(pts))
	s.MeanGC = s.MeanGC / n * 100
	s.MeanCoverage /= n
	return s
}
