// pkg/api/gcbias_v1.go
package api

// GCPointV1 is one GC-vs-coverage scatter point. Window is -1 for
// whole-sequence points.
type GCPointV1 struct {
	SequenceID string  `json:"sequence_id"`
	Window     int     `json:"window"`
	GC         float64 `json:"gc"`
	Coverage   float64 `json:"coverage"`
	MarkerSize float64 `json:"marker_size"`
}

// GCReportV1 wraps a point set with its axis means.
type GCReportV1 struct {
	Level        string      `json:"level"` // "window" | "sequence"
	WindowSize   int         `json:"window_size"`
	MeanGC       float64     `json:"mean_gc_percent"`
	MeanCoverage float64     `json:"mean_coverage"`
	Points       []GCPointV1 `json:"points"`
}
