// Package ring
// Author: momentics <momentics@gmail.com>
//
// Growable wrap-around ring buffer of raw records over an explicit allocator.
//
// A Buffer is a FIFO "bag": any plain (pointer-free, fixed-layout) value may be
// enqueued and must be dequeued in the same order with the same type. No type
// tag is stored. A slot may be reserved up front and filled later through a
// Reservation handle, before the consumer reaches it.
//
// Buffers are single-writer. For many producers use pool.RingBuffers, which
// gives each producer thread its own Buffer.
//
// Contract violations panic with an *api.Error in default builds and are
// unchecked when built with -tags ringunchecked.
package ring
