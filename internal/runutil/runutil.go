// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads returns n, or the CPU count when n <= 0.
func EffectiveThreads(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// WriterBuffer sizes the hand-off channel between producers and a writer
// goroutine: a few slots per worker.
func WriterBuffer(threads int) int {
	return EffectiveThreads(threads) * 4
}
