// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"hmmkit/internal/jsonlutil"
	"hmmkit/internal/output"
)

// StartHitJSONLWriter streams each hit as one JSON line (v1).
func StartHitJSONLWriter(out io.Writer, bufSize int) (chan<- output.Row, <-chan error) {
	return jsonlutil.Start[output.Row](out, bufSize,
		func(enc *json.Encoder, r output.Row) error {
			return enc.Encode(output.ToAPI(r))
		},
		IsBrokenPipe,
	)
}
