// internal/writers/hits.go
package writers

import (
	"io"

	"hmmkit/internal/hmmer"
	"hmmkit/internal/output"
)

func drainRows(ch <-chan output.Row) []output.Row {
	list := make([]output.Row, 0, 128)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

func init() {
	RegisterHit(output.FormatTSV, func(w io.Writer, a HitArgs) error {
		return output.StreamTSV(w, a.In, a.Mode, a.Header)
	})

	// JSON array
	RegisterHit(output.FormatJSON, func(w io.Writer, a HitArgs) error {
		return output.WriteJSON(w, drainRows(a.In))
	})

	// JSONL streaming
	RegisterHit(output.FormatJSONL, func(w io.Writer, a HitArgs) error {
		pipe, done := StartHitJSONLWriter(w, 64)
		for r := range a.In {
			pipe <- r
		}
		close(pipe)
		return <-done
	})
}

// StartHitWriter spins up a writer goroutine for parsed hits. The returned
// channel must be closed by the caller; the error channel yields exactly one
// value once the writer is done. If the writer fails early it keeps draining
// its input so producers never block.
func StartHitWriter(out io.Writer, format string, mode hmmer.Mode, header bool, bufSize int) (chan<- output.Row, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Row, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteHits(format, out, HitArgs{Mode: mode, Header: header, In: in})
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
