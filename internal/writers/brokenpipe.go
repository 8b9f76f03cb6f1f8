package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from writing to a reader that went
// away, as in `hmmkit parse -f jsonl bin*.tblout | head`. Such runs exit 0.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
