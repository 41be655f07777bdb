// File: pool/drain.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Round-robin consumer over the slots of a RingBuffers.

package pool

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-ringbuf/ring"
)

// VisitFunc consumes from b, usually one record, and returns false to take the
// slot out of the current round. It must make progress when it returns true.
type VisitFunc func(index int, b *ring.Buffer) bool

// Drainer interleaves consumption across non-empty slots. Not safe for
// concurrent use; run it on the single consumer after producers quiesce.
type Drainer struct {
	pool    *RingBuffers
	pending *queue.Queue
}

// NewDrainer creates a drainer bound to p.
func NewDrainer(p *RingBuffers) *Drainer {
	return &Drainer{pool: p, pending: queue.New()}
}

// Drain visits every non-empty slot in index order, then again for slots that
// still hold data, until all are empty or have opted out. It returns the
// number of visits.
func (d *Drainer) Drain(fn VisitFunc) int {
	for d.pending.Length() > 0 {
		d.pending.Remove()
	}
	for i := range d.pool.slots {
		if !d.pool.slots[i].buf.IsEmpty() {
			d.pending.Add(i)
		}
	}
	visits := 0
	for d.pending.Length() > 0 {
		i := d.pending.Remove().(int)
		b := &d.pool.slots[i].buf
		visits++
		if fn(i, b) && !b.IsEmpty() {
			d.pending.Add(i)
		}
	}
	return visits
}

// DrainSequential hands each non-empty slot to fn once, in index order.
// fn is expected to consume the whole slot.
func (d *Drainer) DrainSequential(fn func(index int, b *ring.Buffer)) {
	for i := range d.pool.slots {
		b := &d.pool.slots[i].buf
		if !b.IsEmpty() {
			fn(i, b)
		}
	}
}
