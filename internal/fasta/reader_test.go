// internal/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plain = `>seq1 contig one
ACGT
acgt
>seq2
NNnn
`

func writeGz(t *testing.T, name string, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	gw.Close()
	fh.Close()
	return path
}

func TestReadAllGzip(t *testing.T) {
	recs, err := ReadAll(writeGz(t, "bin.fa.gz", plain))
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "seq1" || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed: %+v", recs)
	}
	if string(recs[0].Seq) != "ACGTacgt" {
		t.Fatalf("multi-line sequence not joined: %q", recs[0].Seq)
	}
}

func TestStreamStdin(t *testing.T) {
	// fake stdin by swapping os.Stdin
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() { io.WriteString(w, plain); w.Close() }()

	ch, errc, err := Stream("-")
	if err != nil {
		t.Fatalf("stream stdin: %v", err)
	}
	count := 0
	for range ch {
		count++
	}
	if err := <-errc; err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", count)
	}
}

func TestReadRejectsHeaderlessData(t *testing.T) {
	if _, err := Read(strings.NewReader("ACGT\n>s\nAC\n")); err == nil {
		t.Fatal("expected error for sequence before header")
	}
}

func TestReadCRLF(t *testing.T) {
	recs, err := Read(strings.NewReader(">a\r\nAC\r\nGT\r\n"))
	if err != nil || len(recs) != 1 || string(recs[0].Seq) != "ACGT" {
		t.Fatalf("CRLF parse failed: %+v %v", recs, err)
	}
}
