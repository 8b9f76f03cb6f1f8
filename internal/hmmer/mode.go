package hmmer

import (
	"fmt"
	"strings"
)

// Mode selects which HMMER operation a Runner performs, or which tabular
// layout a Parser reads.
type Mode int

const (
	ModeDom   Mode = iota // hmmsearch --domtblout, one line per domain
	ModeTbl               // hmmsearch --tblout, one line per target
	ModeAlign             // hmmalign
	ModeFetch             // hmmfetch
)

func (m Mode) String() string {
	switch m {
	case ModeDom:
		return "domtblout"
	case ModeTbl:
		return "tblout"
	case ModeAlign:
		return "align"
	case ModeFetch:
		return "fetch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the short CLI names (dom, tbl) as well as the hmmsearch
// option names (domtblout, tblout).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dom", "domtblout":
		return ModeDom, nil
	case "tbl", "tblout":
		return ModeTbl, nil
	case "align":
		return ModeAlign, nil
	case "fetch":
		return ModeFetch, nil
	}
	return 0, fmt.Errorf("%w: mode %q not understood", ErrModeMismatch, s)
}

// Tabular reports whether m names one of the hmmsearch table layouts.
func (m Mode) Tabular() bool { return m == ModeDom || m == ModeTbl }

// minFields is the column count of a data line, the description included.
func (m Mode) minFields() int {
	if m == ModeDom {
		return domFields
	}
	return tblFields
}
