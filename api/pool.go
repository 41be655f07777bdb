// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the allocator seam used by ring stores and thread-partitioned pools.

package api

// DefaultAlign is the alignment used when a caller passes 0.
const DefaultAlign = 4

// Allocator provides explicit memory for ring stores.
// Implementations must be safe for concurrent use: buffers owned by different
// producer threads grow independently against the same allocator.
type Allocator interface {
	// Allocate returns a block of exactly size bytes whose base is aligned to align.
	// align must be zero (DefaultAlign) or a power of two.
	Allocate(size, align uint32) ([]byte, error)

	// Free releases a block previously returned by Allocate.
	// The block must not be used afterwards.
	Free(mem []byte) error

	// Copy copies min(len(dst), len(src)) bytes and returns the count.
	Copy(dst, src []byte) int

	// Zero clears dst.
	Zero(dst []byte)
}

// AllocatorStats aggregates allocation accounting for observability.
type AllocatorStats struct {
	Allocs     uint64
	Frees      uint64
	LiveBytes  int64
	TotalBytes uint64
}

// StatsProvider is implemented by allocators that keep accounting.
type StatsProvider interface {
	Stats() AllocatorStats
}
