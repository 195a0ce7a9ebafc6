// Package poolsize computes the CPU-aware pool size shared by the parser
// pool and the harness worker pool, so neither ever blocks waiting on the
// other for a free slot.
package poolsize

import "runtime"

// Optimal returns min(max(runtime.NumCPU()*2, 4), 32).
func Optimal() int {
	return WithOverride(0)
}

// WithOverride returns override when positive, else Optimal().
func WithOverride(override int) int {
	if override > 0 {
		return override
	}
	n := runtime.NumCPU() * 2
	if n < 4 {
		n = 4
	}
	if n > 32 {
		n = 32
	}
	return n
}
