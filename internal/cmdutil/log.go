// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnTag  = color.New(color.FgYellow, color.Bold)
	errorTag = color.New(color.FgRed)
)

// Warnf prints a user-facing warning to dst unless quiet is set. The "WARN:"
// tag is coloured unless stdout is redirected or NO_COLOR is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = warnTag.Fprint(dst, "WARN:")
	_, _ = fmt.Fprintf(dst, " "+format+"\n", a...)
}

// Errorf prints "error: <msg>" to dst, the form every subcommand uses for
// fatal failures.
func Errorf(dst io.Writer, format string, a ...any) {
	_, _ = errorTag.Fprint(dst, "error:")
	_, _ = fmt.Fprintf(dst, " "+format+"\n", a...)
}
