// File: fake/allocator.go
// Author: momentics <momentics@gmail.com>

package fake

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-ringbuf/alloc"
	"github.com/momentics/hioload-ringbuf/api"
)

// Allocator records every call, detects double frees and can be told to fail.
type Allocator struct {
	mu        sync.Mutex
	inner     api.Allocator
	failAfter int
	failFree  bool
	allocs    int
	frees     int
	sizes     []uint32
	live      map[*byte]int
}

// NewAllocator returns a heap-backed recording allocator that never fails.
func NewAllocator() *Allocator {
	return &Allocator{
		inner:     alloc.NewHeap(),
		failAfter: -1,
		live:      make(map[*byte]int),
	}
}

// FailAllocationsAfter lets n more allocations succeed, then fails every one.
// A negative n disables failures.
func (a *Allocator) FailAllocationsAfter(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n < 0 {
		a.failAfter = -1
		return
	}
	a.failAfter = a.allocs + n
}

// FailFrees makes Free report an error (the block is still released).
func (a *Allocator) FailFrees(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failFree = fail
}

func (a *Allocator) Allocate(size, align uint32) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failAfter >= 0 && a.allocs >= a.failAfter {
		return nil, api.NewError(api.ErrCodeResourceExhausted, "fake allocator exhausted").
			WithContext("size", size)
	}
	mem, err := a.inner.Allocate(size, align)
	if err != nil {
		return nil, err
	}
	a.allocs++
	a.sizes = append(a.sizes, size)
	a.live[unsafe.SliceData(mem)] = len(mem)
	return mem, nil
}

func (a *Allocator) Free(mem []byte) error {
	if mem == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := unsafe.SliceData(mem)
	if _, ok := a.live[key]; !ok {
		return api.NewError(api.ErrCodeInvalidArgument, "free of unknown or already freed block")
	}
	delete(a.live, key)
	a.frees++
	if a.failFree {
		return api.NewError(api.ErrCodeInternal, "fake free failure")
	}
	return a.inner.Free(mem)
}

func (a *Allocator) Copy(dst, src []byte) int { return copy(dst, src) }
func (a *Allocator) Zero(dst []byte)          { clear(dst) }

// Allocations returns the number of successful allocations.
func (a *Allocator) Allocations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Frees returns the number of accepted frees.
func (a *Allocator) Frees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frees
}

// Live returns the number of blocks allocated and not yet freed.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Sizes returns the requested size of every successful allocation, in order.
func (a *Allocator) Sizes() []uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]uint32, len(a.sizes))
	copy(out, a.sizes)
	return out
}

var _ api.Allocator = (*Allocator)(nil)
