// internal/cliutil/cliutil.go
package cliutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals. "-" is
// passed through for stdin.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" {
			out = append(out, a)
			continue
		}
		if hasGlobMeta(a) {
			m, err := filepath.Glob(a)
			if err != nil {
				return nil, fmt.Errorf("bad glob %q: %v", a, err)
			}
			if len(m) == 0 {
				return nil, fmt.Errorf("no input matched %q", a)
			}
			out = append(out, m...)
		} else {
			out = append(out, a)
		}
	}
	return out, nil
}

// SplitExtra separates positionals from arguments after a literal "--".
// dashAt is the index cobra reports via ArgsLenAtDash (-1 when absent).
func SplitExtra(args []string, dashAt int) (pos, extra []string) {
	if dashAt < 0 || dashAt > len(args) {
		return args, nil
	}
	return args[:dashAt], args[dashAt:]
}
