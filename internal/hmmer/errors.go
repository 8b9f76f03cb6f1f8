package hmmer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound: the HMMER binary is missing or its presence check failed.
	ErrToolNotFound = errors.New("hmmer tool not found")
	// ErrModeMismatch: an operation was requested on a Runner or Parser of another mode.
	ErrModeMismatch = errors.New("hmmer mode mismatch")
	// ErrFormat: a tabular data line could not be turned into a record.
	ErrFormat = errors.New("hmmer format error")
)

// FormatError describes a malformed tabular line.
type FormatError struct {
	Line   int    // 1-based line number in the report
	Fields int    // whitespace-delimited fields found
	Want   int    // fields required by the layout
	Text   string // offending line
	Err    error  // numeric conversion failure, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %v:\n%s", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: %d fields, need at least %d:\n%s", e.Line, e.Fields, e.Want, e.Text)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// ExitError is a subprocess that ran but exited nonzero.
type ExitError struct {
	Cmd    []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", strings.Join(e.Cmd, " "), e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}
