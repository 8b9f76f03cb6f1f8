// internal/writers/points.go
package writers

import (
	"io"

	"hmmkit/internal/output"
)

func init() {
	RegisterPoints(output.FormatTSV, output.WriteGCTSV)
	RegisterPoints(output.FormatJSON, func(w io.Writer, r output.GCReport, _ bool) error {
		return output.WriteGCJSON(w, r)
	})
}
