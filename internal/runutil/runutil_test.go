package runutil

import (
	"runtime"
	"testing"
)

func TestEffectiveThreads(t *testing.T) {
	if got := EffectiveThreads(3); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := EffectiveThreads(0); got != runtime.NumCPU() {
		t.Fatalf("0 → all CPUs, got %d", got)
	}
	if got := EffectiveThreads(-2); got != runtime.NumCPU() {
		t.Fatalf("-2 → all CPUs, got %d", got)
	}
}

func TestWriterBuffer(t *testing.T) {
	if got := WriterBuffer(2); got != 8 {
		t.Fatalf("want 8, got %d", got)
	}
}
