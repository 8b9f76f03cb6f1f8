package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadIDs reads model ids from path, one per line. Only the first
// whitespace-separated field of a line is used; blank lines and lines
// starting with '#' are ignored. "-" reads standard input.
func LoadIDs(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		r = fh
	}
	ids, err := ReadIDs(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ids, nil
}

// ReadIDs is LoadIDs over an open reader.
func ReadIDs(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		ids = append(ids, strings.Fields(line)[0])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
