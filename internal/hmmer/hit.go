package hmmer

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	tblFields = 19 // 18 columns + description
	domFields = 23 // 22 columns + description
)

// Hit is one record of a tabular report. TblHit and DomHit implement it.
type Hit interface {
	Mode() Mode
	// Fields returns the discrete columns exactly as they appeared in the
	// report, without the description.
	Fields() []string
	Description() string
	// String joins Fields and Description with tabs.
	String() string
}

// TblHit is one line of an hmmsearch --tblout report.
//
// The numeric fields are decoded from the raw columns, which are kept so that
// Fields and String reproduce the report text. QueryAccession holds the query
// name when the report has "-" in that column.
type TblHit struct {
	TargetName      string
	TargetAccession string
	QueryName       string
	QueryAccession  string

	FullEValue float64
	FullScore  float64
	FullBias   float64
	BestEValue float64
	BestScore  float64
	BestBias   float64

	Exp float64
	Reg int
	Clu int
	Ov  int
	Env int
	Dom int
	Rep int
	Inc int

	TargetDescription string

	raw [tblFields - 1]string
}

// NewTblHit builds a TblHit from exactly 19 values, the last being the
// description.
func NewTblHit(values []string) (TblHit, error) {
	if len(values) != tblFields {
		return TblHit{}, fmt.Errorf("%w: tblout record needs %d values, got %d", ErrFormat, tblFields, len(values))
	}
	var h TblHit
	copy(h.raw[:], values)
	h.TargetName = values[0]
	h.TargetAccession = values[1]
	h.QueryName = values[2]
	h.QueryAccession = accessionOr(values[3], values[2])

	d := decoder{vals: values}
	h.FullEValue = d.atof(4)
	h.FullScore = d.atof(5)
	h.FullBias = d.atof(6)
	h.BestEValue = d.atof(7)
	h.BestScore = d.atof(8)
	h.BestBias = d.atof(9)
	h.Exp = d.atof(10)
	h.Reg = d.atoi(11)
	h.Clu = d.atoi(12)
	h.Ov = d.atoi(13)
	h.Env = d.atoi(14)
	h.Dom = d.atoi(15)
	h.Rep = d.atoi(16)
	h.Inc = d.atoi(17)
	if d.err != nil {
		return TblHit{}, d.err
	}
	h.TargetDescription = values[18]
	return h, nil
}

func (h TblHit) Mode() Mode          { return ModeTbl }
func (h TblHit) Fields() []string    { return append([]string(nil), h.raw[:]...) }
func (h TblHit) Description() string { return h.TargetDescription }
func (h TblHit) String() string      { return joinHit(h.raw[:], h.TargetDescription) }

// DomHit is one line of an hmmsearch --domtblout report.
type DomHit struct {
	TargetName      string
	TargetAccession string
	TargetLength    int
	QueryName       string
	QueryAccession  string
	QueryLength     int

	FullEValue float64
	FullScore  float64
	FullBias   float64

	Dom      int // this domain's number
	NDom     int // domains reported for the target
	CEValue  float64
	IEValue  float64
	DomScore float64
	DomBias  float64

	HMMFrom, HMMTo int
	AliFrom, AliTo int
	EnvFrom, EnvTo int
	Acc            float64

	TargetDescription string

	raw [domFields - 1]string
}

// NewDomHit builds a DomHit from exactly 23 values, the last being the
// description.
func NewDomHit(values []string) (DomHit, error) {
	if len(values) != domFields {
		return DomHit{}, fmt.Errorf("%w: domtblout record needs %d values, got %d", ErrFormat, domFields, len(values))
	}
	var h DomHit
	copy(h.raw[:], values)
	h.TargetName = values[0]
	h.TargetAccession = values[1]
	h.QueryName = values[3]
	h.QueryAccession = accessionOr(values[4], values[3])

	d := decoder{vals: values}
	h.TargetLength = d.atoi(2)
	h.QueryLength = d.atoi(5)
	h.FullEValue = d.atof(6)
	h.FullScore = d.atof(7)
	h.FullBias = d.atof(8)
	h.Dom = d.atoi(9)
	h.NDom = d.atoi(10)
	h.CEValue = d.atof(11)
	h.IEValue = d.atof(12)
	h.DomScore = d.atof(13)
	h.DomBias = d.atof(14)
	h.HMMFrom = d.atoi(15)
	h.HMMTo = d.atoi(16)
	h.AliFrom = d.atoi(17)
	h.AliTo = d.atoi(18)
	h.EnvFrom = d.atoi(19)
	h.EnvTo = d.atoi(20)
	h.Acc = d.atof(21)
	if d.err != nil {
		return DomHit{}, d.err
	}
	h.TargetDescription = values[22]
	return h, nil
}

func (h DomHit) Mode() Mode          { return ModeDom }
func (h DomHit) Fields() []string    { return append([]string(nil), h.raw[:]...) }
func (h DomHit) Description() string { return h.TargetDescription }
func (h DomHit) String() string      { return joinHit(h.raw[:], h.TargetDescription) }

func accessionOr(acc, name string) string {
	if acc == "-" {
		return name
	}
	return acc
}

func joinHit(raw []string, desc string) string {
	var b strings.Builder
	for _, f := range raw {
		b.WriteString(f)
		b.WriteByte('\t')
	}
	b.WriteString(desc)
	return b.String()
}

// decoder converts columns and keeps the first conversion error.
type decoder struct {
	vals []string
	err  error
}

func (d *decoder) atof(i int) float64 {
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(d.vals[i], 64)
	if err != nil {
		d.err = fmt.Errorf("%w: column %d: %v", ErrFormat, i+1, err)
	}
	return v
}

func (d *decoder) atoi(i int) int {
	if d.err != nil {
		return 0
	}
	v, err := strconv.Atoi(d.vals[i])
	if err != nil {
		d.err = fmt.Errorf("%w: column %d: %v", ErrFormat, i+1, err)
	}
	return v
}
