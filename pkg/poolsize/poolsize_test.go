package poolsize

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimal_Bounds(t *testing.T) {
	got := Optimal()
	assert.GreaterOrEqual(t, got, 4)
	assert.LessOrEqual(t, got, 32)

	want := runtime.NumCPU() * 2
	if want < 4 {
		want = 4
	}
	if want > 32 {
		want = 32
	}
	assert.Equal(t, want, got)
}

func TestWithOverride(t *testing.T) {
	assert.Equal(t, 7, WithOverride(7))
	assert.Equal(t, Optimal(), WithOverride(0))
	assert.Equal(t, Optimal(), WithOverride(-1))
}
