// File: alloc/counting.go
// Author: momentics <momentics@gmail.com>
//
// Accounting wrapper around any api.Allocator.

package alloc

import (
	"sync/atomic"

	"github.com/momentics/hioload-ringbuf/api"
)

// Counting forwards to an inner allocator and keeps lock-free counters.
type Counting struct {
	inner  api.Allocator
	allocs atomic.Uint64
	frees  atomic.Uint64
	live   atomic.Int64
	total  atomic.Uint64
}

// NewCounting wraps inner. A nil inner selects the heap allocator.
func NewCounting(inner api.Allocator) *Counting {
	if inner == nil {
		inner = NewHeap()
	}
	return &Counting{inner: inner}
}

func (c *Counting) Allocate(size, align uint32) ([]byte, error) {
	mem, err := c.inner.Allocate(size, align)
	if err != nil {
		return nil, err
	}
	c.allocs.Add(1)
	c.live.Add(int64(len(mem)))
	c.total.Add(uint64(len(mem)))
	return mem, nil
}

func (c *Counting) Free(mem []byte) error {
	if mem == nil {
		return nil
	}
	if err := c.inner.Free(mem); err != nil {
		return err
	}
	c.frees.Add(1)
	c.live.Add(-int64(len(mem)))
	return nil
}

func (c *Counting) Copy(dst, src []byte) int { return c.inner.Copy(dst, src) }
func (c *Counting) Zero(dst []byte)          { c.inner.Zero(dst) }

// Stats returns a snapshot of the counters.
func (c *Counting) Stats() api.AllocatorStats {
	return api.AllocatorStats{
		Allocs:     c.allocs.Load(),
		Frees:      c.frees.Load(),
		LiveBytes:  c.live.Load(),
		TotalBytes: c.total.Load(),
	}
}

var (
	_ api.Allocator     = (*Counting)(nil)
	_ api.StatsProvider = (*Counting)(nil)
)
