// File: alloc/heap.go
// Author: momentics <momentics@gmail.com>
//
// Go-heap allocator. Blocks are over-allocated by align-1 bytes and resliced at
// the first aligned offset; the collector never moves heap objects, so the
// alignment holds for the block's lifetime.

package alloc

import (
	"unsafe"

	"github.com/momentics/hioload-ringbuf/api"
)

// Heap allocates ring memory from the Go heap.
type Heap struct{}

// NewHeap returns the heap allocator.
func NewHeap() *Heap { return &Heap{} }

// Allocate returns size bytes aligned to align.
func (h *Heap) Allocate(size, align uint32) ([]byte, error) {
	align, err := normalizeAlign(align)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "zero-sized allocation")
	}
	raw := make([]byte, int(size)+int(align)-1)
	off := alignOffset(unsafe.Pointer(&raw[0]), align)
	return raw[off : off+size : off+size], nil
}

// Free drops the block; the collector reclaims it.
func (h *Heap) Free(mem []byte) error { return nil }

// Copy is a plain memmove.
func (h *Heap) Copy(dst, src []byte) int { return copy(dst, src) }

// Zero clears dst.
func (h *Heap) Zero(dst []byte) { clear(dst) }

var _ api.Allocator = (*Heap)(nil)
