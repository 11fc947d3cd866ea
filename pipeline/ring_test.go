package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/virtual-input/ps2d/pipeline"
)

func TestRingFIFOOrder(t *testing.T) {
	r := pipeline.NewRing(8)

	for i := byte(1); i <= 7; i++ {
		assert.True(t, r.Push(i))
	}
	assert.Equal(t, 7, r.Len())

	for i := byte(1); i <= 7; i++ {
		b, ok := r.Pop()
		assert.True(t, ok)
		assert.Equal(t, i, b)
	}
	_, ok := r.Pop()
	assert.False(t, ok)
}

func TestRingCapacity(t *testing.T) {
	r := pipeline.NewRing(4)
	assert.Equal(t, 3, r.Cap())

	assert.True(t, r.Push(1))
	assert.True(t, r.Push(2))
	assert.True(t, r.Push(3))
	assert.False(t, r.Push(4), "push into a full ring must fail")
	assert.Equal(t, 3, r.Len())

	// Popping one frees exactly one slot.
	b, ok := r.Pop()
	assert.True(t, ok)
	assert.Equal(t, byte(1), b)
	assert.True(t, r.Push(4))
	assert.False(t, r.Push(5))
}

func TestRingWrapAround(t *testing.T) {
	r := pipeline.NewRing(4)

	// Cycle enough bytes through to wrap the indices several times.
	next := byte(0)
	for cycle := 0; cycle < 10; cycle++ {
		assert.True(t, r.Push(next))
		assert.True(t, r.Push(next+1))
		b, ok := r.Pop()
		assert.True(t, ok)
		assert.Equal(t, next, b)
		b, ok = r.Pop()
		assert.True(t, ok)
		assert.Equal(t, next+1, b)
		next += 2
	}
	assert.Equal(t, 0, r.Len())
}

func TestRingDrain(t *testing.T) {
	r := pipeline.NewRing(16)
	for i := byte(0); i < 5; i++ {
		r.Push(i)
	}

	var got []byte
	r.Drain(func(b byte) { got = append(got, b) })
	assert.Equal(t, []byte{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, r.Len())
}

func TestNewRingPanicsOnTinyCapacity(t *testing.T) {
	assert.Panics(t, func() { pipeline.NewRing(1) })
	assert.Panics(t, func() { pipeline.NewRing(0) })
}
