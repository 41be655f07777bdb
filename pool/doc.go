// Package pool
// Author: momentics <momentics@gmail.com>
//
// Thread-partitioned ring buffer pool.
// RingBuffers owns one ring.Buffer per producer thread index, laid out in a
// single contiguous, cache-line padded block, so producers append without
// coordinating. A single consumer drains the slots after producers quiesce;
// no ordering is defined across slots. Drainer visits non-empty slots
// round-robin for consumers that want an interleaved drain.
package pool
