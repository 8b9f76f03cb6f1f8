// internal/output/json.go
package output

import (
	"io"

	"hmmkit/internal/gcbias"
	"hmmkit/internal/hmmer"
	"hmmkit/internal/jsonutil"
	"hmmkit/pkg/api"
)

// ToAPIHit converts a TblHit to the stable wire schema (v1).
func ToAPIHit(h hmmer.TblHit, source string) api.HitV1 {
	return api.HitV1{
		TargetName:      h.TargetName,
		TargetAccession: h.TargetAccession,
		QueryName:       h.QueryName,
		QueryAccession:  h.QueryAccession,
		FullEValue:      h.FullEValue,
		FullScore:       h.FullScore,
		FullBias:        h.FullBias,
		BestEValue:      h.BestEValue,
		BestScore:       h.BestScore,
		BestBias:        h.BestBias,
		Exp:             h.Exp,
		Reg:             h.Reg,
		Clu:             h.Clu,
		Ov:              h.Ov,
		Env:             h.Env,
		Dom:             h.Dom,
		Rep:             h.Rep,
		Inc:             h.Inc,
		Description:     h.TargetDescription,
		SourceFile:      source,
	}
}

// ToAPIDomainHit converts a DomHit to the stable wire schema (v1).
func ToAPIDomainHit(h hmmer.DomHit, source string) api.DomainHitV1 {
	return api.DomainHitV1{
		TargetName:      h.TargetName,
		TargetAccession: h.TargetAccession,
		TargetLength:    h.TargetLength,
		QueryName:       h.QueryName,
		QueryAccession:  h.QueryAccession,
		QueryLength:     h.QueryLength,
		FullEValue:      h.FullEValue,
		FullScore:       h.FullScore,
		FullBias:        h.FullBias,
		Dom:             h.Dom,
		NDom:            h.NDom,
		CEValue:         h.CEValue,
		IEValue:         h.IEValue,
		DomScore:        h.DomScore,
		DomBias:         h.DomBias,
		HMMFrom:         h.HMMFrom,
		HMMTo:           h.HMMTo,
		AliFrom:         h.AliFrom,
		AliTo:           h.AliTo,
		EnvFrom:         h.EnvFrom,
		EnvTo:           h.EnvTo,
		Acc:             h.Acc,
		Description:     h.TargetDescription,
		SourceFile:      source,
	}
}

// ToAPI converts any row to its wire value.
func ToAPI(r Row) any {
	switch h := r.Hit.(type) {
	case hmmer.TblHit:
		return ToAPIHit(h, r.Source)
	case hmmer.DomHit:
		return ToAPIDomainHit(h, r.Source)
	}
	return nil
}

// WriteJSON writes a single JSON array of v1 hits (pretty-indented).
func WriteJSON(w io.Writer, rows []Row) error {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAPI(r))
	}
	return jsonutil.EncodePretty(w, out)
}

// ToAPIPoint converts a GC point to the wire schema (v1).
func ToAPIPoint(p gcbias.Point) api.GCPointV1 {
	return api.GCPointV1{
		SequenceID: p.SeqID,
		Window:     p.Window,
		GC:         p.GC,
		Coverage:   p.Coverage,
		MarkerSize: p.Size,
	}
}

// GCReport bundles a point set for rendering.
type GCReport struct {
	Level      string
	WindowSize int
	Points     []gcbias.Point
}

// WriteGCJSON writes the report with its axis means as one JSON object.
func WriteGCJSON(w io.Writer, r GCReport) error {
	s := gcbias.Summarize(r.Points)
	v := api.GCReportV1{
		Level:        r.Level,
		WindowSize:   r.WindowSize,
		MeanGC:       s.MeanGC,
		MeanCoverage: s.MeanCoverage,
		Points:       make([]api.GCPointV1, 0, len(r.Points)),
	}
	for _, p := range r.Points {
		v.Points = append(v.Points, ToAPIPoint(p))
	}
	return jsonutil.EncodePretty(w, v)
}
