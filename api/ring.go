// Package api
// Author: momentics <momentics@gmail.com>
//
// Growable byte ring contract shared by standalone and pooled buffers.

package api

// ByteRing is a growable FIFO of raw, 4-byte aligned records.
// One writer per ring; readers must consume in the order and with the sizes written.
type ByteRing interface {
	// Write appends p, growing the ring if needed.
	Write(p []byte) error
	// Read consumes len(dst) bytes (advancing by the aligned size).
	Read(dst []byte)
	// Count returns the number of outstanding bytes.
	Count() uint32
	// Capacity returns the allocated size in bytes.
	Capacity() uint32
	// IsEmpty reports true when nothing is outstanding or nothing was ever allocated.
	IsEmpty() bool
	// Clear drops outstanding records without releasing memory.
	Clear()
	// Dispose releases the backing memory.
	Dispose() error
}

// RingStats is a point-in-time snapshot of a ring buffer.
type RingStats struct {
	ID         uint32
	Size       uint32
	Capacity   uint32
	Generation uint32
	Allocated  bool
	Grows      uint64
}
