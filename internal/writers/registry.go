// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"hmmkit/internal/hmmer"
	"hmmkit/internal/output"
)

// HitArgs is what a hit writer receives.
type HitArgs struct {
	Mode   hmmer.Mode
	Header bool
	In     <-chan output.Row
}

// Writer registries (format → handler). Register in init() blocks.
var (
	HitWriters   = map[string]func(w io.Writer, args HitArgs) error{}
	PointWriters = map[string]func(w io.Writer, r output.GCReport, header bool) error{}
)

// Register helpers (idempotent last-wins)
func RegisterHit(format string, fn func(io.Writer, HitArgs) error) { HitWriters[format] = fn }
func RegisterPoints(format string, fn func(io.Writer, output.GCReport, bool) error) {
	PointWriters[format] = fn
}

// WriteHits dispatches to the writer registered for format.
func WriteHits(format string, w io.Writer, args HitArgs) error {
	fn, ok := HitWriters[format]
	if !ok {
		return fmt.Errorf("unknown hit format %q (have %v)", format, formats(HitWriters))
	}
	return fn(w, args)
}

// WritePoints dispatches to the GC point writer registered for format.
func WritePoints(format string, w io.Writer, r output.GCReport, header bool) error {
	fn, ok := PointWriters[format]
	if !ok {
		return fmt.Errorf("unknown gcbias format %q (have %v)", format, formats(PointWriters))
	}
	return fn(w, r, header)
}

func formats[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
