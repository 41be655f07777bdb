// File: ring/buffer.go
// Author: momentics <momentics@gmail.com>
//
// Buffer owns one circular byte store, allocates it lazily and grows it
// geometrically whenever an incoming record does not fit.

package ring

import (
	"math"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/momentics/hioload-ringbuf/alloc"
	"github.com/momentics/hioload-ringbuf/api"
	"github.com/momentics/hioload-ringbuf/internal/contract"
	"github.com/momentics/hioload-ringbuf/internal/ringstore"
)

// Token names a reserved slot. It survives growth and is invalidated by Clear
// and Dispose.
type Token = ringstore.Token

// Buffer is a growable single-writer FIFO of raw records.
// The zero value is not usable; construct with New or Init.
type Buffer struct {
	store    ringstore.Store
	logger   *zap.Logger
	observer Observer
}

// Ensure compile-time compliance.
var _ api.ByteRing = (*Buffer)(nil)

// New creates a buffer drawing memory from a (the heap allocator when nil).
// Nothing is allocated unless WithCapacity is given.
func New(a api.Allocator, opts ...Option) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Init(a, opts...); err != nil {
		return nil, err
	}
	return b, nil
}

// Init constructs the buffer in place. Pools use it to build slots inside a
// contiguous block.
func (b *Buffer) Init(a api.Allocator, opts ...Option) error {
	if a == nil {
		a = alloc.NewHeap()
	}
	o := applyOptions(opts...)
	b.store.Init(a, o.id)
	b.logger = o.logger
	b.observer = o.observer
	if o.capacity > 0 {
		return b.grow(o.capacity)
	}
	return nil
}

// NextCapacity returns the capacity a store of the given size grows to when a
// record of need bytes (already aligned) does not fit: ceil((capacity+need)*1.5).
func NextCapacity(capacity, need uint32) (uint32, error) {
	x := uint64(capacity) + uint64(need)
	next := (3*x + 1) / 2
	if next < api.DefaultAlign {
		next = api.DefaultAlign
	}
	if next > math.MaxUint32-3 {
		return 0, api.NewError(api.ErrCodeResourceExhausted, "ring buffer capacity overflow").
			WithContext("capacity", capacity).
			WithContext("need", need)
	}
	return uint32(next), nil
}

// ensure grows the store until need more bytes fit.
func (b *Buffer) ensure(need uint32) error {
	if b.store.IsAllocated() && b.store.Space() >= need {
		return nil
	}
	next, err := NextCapacity(b.store.Capacity(), need)
	if err != nil {
		return err
	}
	return b.grow(next)
}

func (b *Buffer) grow(capacity uint32) error {
	old := b.store.Capacity()
	if err := b.store.Grow(capacity, api.DefaultAlign); err != nil {
		if api.CodeOf(err) == api.ErrCodeAllocationFailed {
			b.logger.Error("ring buffer grow failed",
				zap.Uint32("id", b.store.ID()),
				zap.Uint32("capacity", old),
				zap.Uint32("requested", capacity),
				zap.Error(err))
			return err
		}
		b.logger.Warn("ring buffer could not release previous block",
			zap.Uint32("id", b.store.ID()), zap.Error(err))
	}
	b.logger.Debug("ring buffer grown",
		zap.Uint32("id", b.store.ID()),
		zap.String("from", humanize.IBytes(uint64(old))),
		zap.String("to", humanize.IBytes(uint64(b.store.Capacity()))),
		zap.Uint32("size", b.store.Size()))
	if b.observer != nil {
		b.observer.OnGrow(old, b.store.Capacity())
	}
	return nil
}

// Write enqueues p as one record occupying Align4(len(p)) bytes.
func (b *Buffer) Write(p []byte) error {
	n := contract.Align4(uint32(len(p)))
	if err := b.ensure(n); err != nil {
		return err
	}
	b.store.Write(p)
	if b.observer != nil {
		b.observer.OnWrite(n)
	}
	return nil
}

// WriteUnaligned enqueues p occupying exactly len(p) bytes.
func (b *Buffer) WriteUnaligned(p []byte) error {
	n := uint32(len(p))
	if err := b.ensure(n); err != nil {
		return err
	}
	b.store.WriteUnaligned(p)
	if b.observer != nil {
		b.observer.OnWrite(n)
	}
	return nil
}

// Read dequeues the oldest len(dst) bytes into dst.
func (b *Buffer) Read(dst []byte) {
	b.store.Read(dst)
	if b.observer != nil {
		b.observer.OnRead(contract.Align4(uint32(len(dst))))
	}
}

// ReadUnaligned dequeues exactly len(dst) bytes.
func (b *Buffer) ReadUnaligned(dst []byte) {
	b.store.ReadUnaligned(dst)
	if b.observer != nil {
		b.observer.OnRead(uint32(len(dst)))
	}
}

// Peek copies the oldest len(dst) bytes without consuming them.
func (b *Buffer) Peek(dst []byte) {
	b.store.Peek(dst)
}

// Reserve claims a slot of size bytes to be filled later with Fill.
func (b *Buffer) Reserve(size uint32) (Token, error) {
	n := contract.Align4(size)
	if err := b.ensure(n); err != nil {
		return Token{}, err
	}
	tok := b.store.Reserve(size)
	if b.observer != nil {
		b.observer.OnReserve(n)
	}
	return tok, nil
}

// Fill writes src into a reserved slot.
func (b *Buffer) Fill(tok Token, src []byte) { b.store.Fill(tok, src) }

// Load reads a reserved slot into dst without consuming it.
func (b *Buffer) Load(tok Token, dst []byte) { b.store.Load(tok, dst) }

// IsEmpty reports true when the buffer was never allocated or holds nothing.
func (b *Buffer) IsEmpty() bool {
	return !b.store.IsAllocated() || b.store.Size() == 0
}

// Count returns outstanding bytes.
func (b *Buffer) Count() uint32 { return b.store.Size() }

// Capacity returns the allocated size in bytes.
func (b *Buffer) Capacity() uint32 { return b.store.Capacity() }

// ID returns the diagnostic id.
func (b *Buffer) ID() uint32 { return b.store.ID() }

// Stats returns a snapshot of the buffer.
func (b *Buffer) Stats() api.RingStats { return b.store.Stats() }

// Clear drops all records without releasing memory.
func (b *Buffer) Clear() { b.store.Clear() }

// Dispose releases the backing memory. It is safe to call more than once;
// a disposed buffer allocates again on its next write.
func (b *Buffer) Dispose() error {
	return b.store.Dispose()
}
