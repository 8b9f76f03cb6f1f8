// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. ID is the first word of the header line.
type Record struct {
	ID  string
	Seq []byte
}

// Stream reads path ('-' = stdin, *.gz = gzip) and sends whole records on the
// returned channel. A read error ends the stream early and is delivered on
// the error channel, which is closed after the record channel.
func Stream(path string) (<-chan Record, <-chan error, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan Record, 4)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(out)
		defer rc.Close()
		if err := scan(rc, func(r Record) { out <- r }); err != nil {
			errc <- fmt.Errorf("%s: %w", path, err)
		}
	}()
	return out, errc, nil
}

// ReadAll reads every record of path.
func ReadAll(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var recs []Record
	if err := scan(rc, func(r Record) { recs = append(recs, r) }); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Read parses records from an open reader.
func Read(r io.Reader) ([]Record, error) {
	var recs []Record
	err := scan(r, func(rec Record) { recs = append(recs, rec) })
	return recs, err
}

func scan(rd io.Reader, emit func(Record)) error {
	r := bufio.NewReader(rd)
	var (
		id  string
		buf []byte
	)
	flush := func() {
		if id != "" {
			emit(Record{ID: id, Seq: bytes.Clone(buf)})
		}
	}

	for {
		line, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF
		line = bytes.TrimRight(line, "\r\n")

		switch {
		case len(line) > 0 && line[0] == '>':
			flush()
			fields := strings.Fields(string(line[1:]))
			if len(fields) == 0 {
				return fmt.Errorf("empty FASTA header")
			}
			id = fields[0]
			buf = buf[:0]
		case len(line) > 0:
			if id == "" {
				return fmt.Errorf("sequence data before first FASTA header")
			}
			buf = append(buf, bytes.TrimSpace(line)...)
		}
		if eof {
			break
		}
	}
	flush()
	return nil
}

/* ---------------- small helpers ---------------- */

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
