// File: alloc/heap_test.go
// Author: momentics <momentics@gmail.com>

package alloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ringbuf/api"
)

func TestHeapAlignment(t *testing.T) {
	h := NewHeap()
	for _, align := range []uint32{0, 4, 8, 64, 4096} {
		mem, err := h.Allocate(100, align)
		require.NoError(t, err)
		assert.Len(t, mem, 100)
		assert.Equal(t, 100, cap(mem), "cap must not expose the slack")
		want := align
		if want == 0 {
			want = api.DefaultAlign
		}
		assert.True(t, IsAligned(mem, want), "align %d", align)
		require.NoError(t, h.Free(mem))
	}
}

func TestHeapRejectsBadArguments(t *testing.T) {
	h := NewHeap()
	_, err := h.Allocate(16, 3)
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
	_, err = h.Allocate(0, 4)
	assert.True(t, errors.Is(err, api.ErrInvalidArgument))
}

func TestHeapCopyZero(t *testing.T) {
	h := NewHeap()
	dst := make([]byte, 4)
	assert.Equal(t, 3, h.Copy(dst, []byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3, 0}, dst)
	h.Zero(dst)
	assert.Equal(t, []byte{0, 0, 0, 0}, dst)
}

func TestNew(t *testing.T) {
	a, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Heap{}, a)

	a, err = New(" HEAP ")
	require.NoError(t, err)
	assert.IsType(t, &Heap{}, a)

	_, err = New("slab")
	assert.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(err))
}

func TestCounting(t *testing.T) {
	c := NewCounting(nil)
	a, err := c.Allocate(64, 0)
	require.NoError(t, err)
	b, err := c.Allocate(32, 0)
	require.NoError(t, err)

	st := c.Stats()
	assert.Equal(t, uint64(2), st.Allocs)
	assert.Equal(t, int64(96), st.LiveBytes)
	assert.Equal(t, uint64(96), st.TotalBytes)

	require.NoError(t, c.Free(a))
	require.NoError(t, c.Free(nil))
	st = c.Stats()
	assert.Equal(t, uint64(1), st.Frees)
	assert.Equal(t, int64(32), st.LiveBytes)

	require.NoError(t, c.Free(b))
	assert.Zero(t, c.Stats().LiveBytes)

	_, err = c.Allocate(0, 0)
	require.Error(t, err)
	assert.Equal(t, uint64(2), c.Stats().Allocs, "failed allocations are not counted")
}
