// File: pool/ringbuffers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingBuffers: one growable ring per producer thread index.

package pool

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-ringbuf/alloc"
	"github.com/momentics/hioload-ringbuf/api"
	"github.com/momentics/hioload-ringbuf/internal/contract"
	"github.com/momentics/hioload-ringbuf/ring"
)

const (
	// DefaultThreadIndex marks "no thread"; it has no slot.
	DefaultThreadIndex = -1
	// MinThreadIndex is the lowest index IsInvalidThreadIndex accepts.
	MinThreadIndex = DefaultThreadIndex
)

// slot pads each buffer to its own cache line so neighbouring producers do
// not false-share cursor updates.
type slot struct {
	buf ring.Buffer
	_   cpu.CacheLinePad
}

// RingBuffers is a fixed set of per-thread ring buffers.
type RingBuffers struct {
	slots  []slot
	count  uint32
	alloc  api.Allocator
	name   string
	logger *zap.Logger
	probes api.Debug
}

// NewRingBuffers builds threadCount buffers, each tagged with its index.
// Buffers allocate lazily unless WithInitialCapacity is set.
func NewRingBuffers(a api.Allocator, threadCount uint32, opts ...Option) (*RingBuffers, error) {
	o := applyOptions(opts...)
	if a == nil {
		a = alloc.NewHeap()
	}
	p := &RingBuffers{
		slots:  make([]slot, threadCount),
		count:  threadCount,
		alloc:  a,
		name:   o.name,
		logger: o.logger,
		probes: o.probes,
	}
	for i := range p.slots {
		ropts := []ring.Option{
			ring.WithID(uint32(i)),
			ring.WithLogger(o.logger),
		}
		if o.metrics != nil {
			ropts = append(ropts, ring.WithObserver(o.metrics.Observer(uint32(i))))
		}
		if o.initialCapacity > 0 {
			ropts = append(ropts, ring.WithCapacity(o.initialCapacity))
		}
		if err := p.slots[i].buf.Init(a, ropts...); err != nil {
			if derr := p.Dispose(); derr != nil {
				err = multierror.Append(err, derr)
			}
			return nil, err
		}
	}
	p.registerProbes()
	p.logger.Info("ring buffer pool created",
		zap.String("name", p.name),
		zap.Uint32("threads", threadCount),
		zap.Uint32("initial_capacity", o.initialCapacity),
		zap.String("allocator", fmt.Sprintf("%T", a)))
	return p, nil
}

// IsInvalidThreadIndex reports index < MinThreadIndex || index > Count().
// The upper bound admits Count() itself, which has no slot; GetBuffer rejects it.
// After Dispose, Count() is 0 and only -1 and 0 pass.
func (p *RingBuffers) IsInvalidThreadIndex(index int) bool {
	return index < MinThreadIndex || index > int(p.count)
}

// GetBuffer returns the buffer owned by thread index.
// Bounds policy: default builds panic with a contract violation outside
// [0, Count()); ringunchecked builds leave it to the runtime slice check.
func (p *RingBuffers) GetBuffer(index int) *ring.Buffer {
	if contract.Enabled && (index < 0 || index >= len(p.slots)) {
		contract.Violation("GetBuffer", "thread index out of range",
			"index", index, "count", len(p.slots))
	}
	return &p.slots[index].buf
}

// TryGetBuffer is GetBuffer with an explicit ok result instead of a panic.
func (p *RingBuffers) TryGetBuffer(index int) (*ring.Buffer, bool) {
	if index < 0 || index >= len(p.slots) {
		return nil, false
	}
	return &p.slots[index].buf, true
}

// Count returns the number of thread slots, 0 once disposed.
func (p *RingBuffers) Count() uint32 { return p.count }

// Allocator returns the allocator shared by all slots.
func (p *RingBuffers) Allocator() api.Allocator { return p.alloc }

// Len returns outstanding bytes summed over all slots.
func (p *RingBuffers) Len() uint64 {
	var n uint64
	for i := range p.slots {
		n += uint64(p.slots[i].buf.Count())
	}
	return n
}

// IsEmpty reports whether every slot is empty.
func (p *RingBuffers) IsEmpty() bool {
	for i := range p.slots {
		if !p.slots[i].buf.IsEmpty() {
			return false
		}
	}
	return true
}

// Stats returns a snapshot per slot.
func (p *RingBuffers) Stats() []api.RingStats {
	out := make([]api.RingStats, len(p.slots))
	for i := range p.slots {
		out[i] = p.slots[i].buf.Stats()
	}
	return out
}

// Clear empties every slot, keeping its memory.
func (p *RingBuffers) Clear() {
	for i := range p.slots {
		p.slots[i].buf.Clear()
	}
}

// Dispose releases every slot and the slot block. Calling it again is a no-op.
func (p *RingBuffers) Dispose() error {
	if p.slots == nil {
		return nil
	}
	var result *multierror.Error
	for i := range p.slots {
		if err := p.slots[i].buf.Dispose(); err != nil {
			result = multierror.Append(result, fmt.Errorf("slot %d: %w", i, err))
		}
	}
	p.unregisterProbes()
	p.slots = nil
	p.count = 0
	p.logger.Info("ring buffer pool disposed", zap.String("name", p.name))
	return result.ErrorOrNil()
}

func (p *RingBuffers) probeName(i int) string {
	return fmt.Sprintf("%s.slot.%d", p.name, i)
}

func (p *RingBuffers) registerProbes() {
	if p.probes == nil {
		return
	}
	for i := range p.slots {
		b := &p.slots[i].buf
		p.probes.RegisterProbe(p.probeName(i), func() any { return b.Stats() })
	}
	p.probes.RegisterProbe(p.name+".bytes", func() any { return p.Len() })
}

func (p *RingBuffers) unregisterProbes() {
	if p.probes == nil {
		return
	}
	for i := range p.slots {
		p.probes.UnregisterProbe(p.probeName(i))
	}
	p.probes.UnregisterProbe(p.name + ".bytes")
}
