// File: pool/drain_test.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ringbuf/ring"
)

func fill(t *testing.T, p *RingBuffers, counts ...int) {
	t.Helper()
	for i, n := range counts {
		for k := 0; k < n; k++ {
			require.NoError(t, ring.Enqueue(p.GetBuffer(i), uint32(k)))
		}
	}
}

func TestDrainRoundRobin(t *testing.T) {
	p := newPool(t, 3)
	fill(t, p, 3, 0, 2)

	var order []int
	visits := NewDrainer(p).Drain(func(index int, b *ring.Buffer) bool {
		order = append(order, index)
		ring.Dequeue[uint32](b)
		return true
	})
	assert.Equal(t, []int{0, 2, 0, 2, 0}, order)
	assert.Equal(t, 5, visits)
	assert.True(t, p.IsEmpty())
}

func TestDrainOptOut(t *testing.T) {
	p := newPool(t, 2)
	fill(t, p, 2, 2)

	var order []int
	d := NewDrainer(p)
	d.Drain(func(index int, b *ring.Buffer) bool {
		order = append(order, index)
		ring.Dequeue[uint32](b)
		return index != 0
	})
	assert.Equal(t, []int{0, 1, 1}, order)
	assert.Equal(t, uint32(4), p.GetBuffer(0).Count())

	// a second pass starts from the current state
	order = order[:0]
	d.Drain(func(index int, b *ring.Buffer) bool {
		order = append(order, index)
		ring.Dequeue[uint32](b)
		return true
	})
	assert.Equal(t, []int{0}, order)
}

func TestDrainSequential(t *testing.T) {
	p := newPool(t, 3)
	fill(t, p, 1, 0, 2)

	var got []uint32
	var slots []int
	NewDrainer(p).DrainSequential(func(index int, b *ring.Buffer) {
		slots = append(slots, index)
		for !b.IsEmpty() {
			got = append(got, ring.Dequeue[uint32](b))
		}
	})
	assert.Equal(t, []int{0, 2}, slots)
	assert.Equal(t, []uint32{0, 0, 1}, got)
}
