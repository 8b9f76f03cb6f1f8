package gcbias

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SeqCoverage is the read coverage of one sequence.
type SeqCoverage struct {
	Mean    float64
	Windows []float64
}

// Coverage maps sequence id to its coverage.
type Coverage map[string]SeqCoverage

// ReadCoverage parses a coverage profile, one sequence per line:
//
//	seq_id <TAB> mean <TAB> w1,w2,...
//
// The window column may be empty or absent for sequences shorter than one
// window. Blank lines and '#' comments are skipped.
func ReadCoverage(r io.Reader) (Coverage, error) {
	cov := Coverage{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 64<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 2 || len(f) > 3 {
			return nil, fmt.Errorf("line %d: bad field count %d", ln, len(f))
		}
		id := strings.TrimSpace(f[0])
		if _, dup := cov[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate sequence id %q", ln, id)
		}
		mean, err := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: mean coverage: %v", ln, err)
		}
		entry := SeqCoverage{Mean: mean}
		if len(f) == 3 && strings.TrimSpace(f[2]) != "" {
			for _, w := range strings.Split(f[2], ",") {
				v, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: window coverage: %v", ln, err)
				}
				entry.Windows = append(entry.Windows, v)
			}
		}
		cov[id] = entry
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cov, nil
}

// LoadCoverage reads a coverage profile from path.
func LoadCoverage(path string) (Coverage, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	cov, err := ReadCoverage(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cov, nil
}
