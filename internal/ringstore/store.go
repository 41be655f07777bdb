// File: internal/ringstore/store.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ringstore

import (
	"github.com/momentics/hioload-ringbuf/api"
	"github.com/momentics/hioload-ringbuf/internal/contract"
)

// noCopy makes go vet flag accidental copies of a live store.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Token identifies a reserved region inside one generation of a Store.
// Position is logical: it stays meaningful across Grow, which shifts the
// physical cursors down by the consumed prefix.
type Token struct {
	Position   uint64 // logical write cursor before the reservation
	Size       uint32 // requested size, unaligned
	Generation uint32
}

// Store is a growable circular byte store. The zero value is empty and owns no memory.
// A Store is moved, never copied: copies would alias the same block.
type Store struct {
	_ noCopy

	mem        []byte
	capacity   uint32
	write      uint64
	read       uint64
	generation uint32
	grows      uint64
	// rebase is the amount Grow has subtracted from the cursors since the
	// last Clear or Dispose; logical position = cursor + rebase.
	rebase uint64

	alloc api.Allocator
	id    uint32
}

// Init binds the store to an allocator and debug id. It does not allocate.
func (s *Store) Init(a api.Allocator, id uint32) {
	s.alloc = a
	s.id = id
}

// Size returns outstanding bytes.
func (s *Store) Size() uint32 { return uint32(s.write - s.read) }

// Space returns free bytes.
func (s *Store) Space() uint32 { return s.capacity - s.Size() }

// Capacity returns the block size in bytes.
func (s *Store) Capacity() uint32 { return s.capacity }

// IsAllocated reports whether the store owns a block.
func (s *Store) IsAllocated() bool { return s.mem != nil }

// ID returns the debug tag.
func (s *Store) ID() uint32 { return s.id }

// Generation changes on every Clear and Dispose. Grow keeps it.
func (s *Store) Generation() uint32 { return s.generation }

// Allocator returns the allocator the store draws from.
func (s *Store) Allocator() api.Allocator { return s.alloc }

// Cursors returns the raw read and write counters.
func (s *Store) Cursors() (read, write uint64) { return s.read, s.write }

// Stats returns a snapshot of the store.
func (s *Store) Stats() api.RingStats {
	return api.RingStats{
		ID:         s.id,
		Size:       s.Size(),
		Capacity:   s.capacity,
		Generation: s.generation,
		Allocated:  s.mem != nil,
		Grows:      s.grows,
	}
}

// Write appends p and advances the write cursor by len(p) rounded up to 4.
// The caller must have grown the store so that Space() >= Align4(len(p)).
func (s *Store) Write(p []byte) {
	s.write0("Write", p, contract.Align4(uint32(len(p))))
}

// WriteUnaligned appends p advancing by exactly len(p). Pair it with ReadUnaligned.
func (s *Store) WriteUnaligned(p []byte) {
	s.write0("WriteUnaligned", p, uint32(len(p)))
}

func (s *Store) write0(op string, p []byte, advance uint32) {
	if contract.Enabled {
		s.checkAllocated(op)
		if s.Space() < advance {
			contract.Violation(op, "no writing authorized: insufficient space",
				"id", s.id, "space", s.Space(), "need", advance)
		}
	}
	s.copyIn(s.write, p)
	s.write += uint64(advance)
}

// Read fills dst with the oldest record and advances the read cursor by len(dst) rounded up to 4.
func (s *Store) Read(dst []byte) {
	s.read0("Read", dst, contract.Align4(uint32(len(dst))))
}

// ReadUnaligned consumes exactly len(dst) bytes.
func (s *Store) ReadUnaligned(dst []byte) {
	s.read0("ReadUnaligned", dst, uint32(len(dst)))
}

func (s *Store) read0(op string, dst []byte, advance uint32) {
	if contract.Enabled {
		s.checkAllocated(op)
		if s.Size() < advance {
			contract.Violation(op, "dequeuing empty queue or unexpected type dequeued",
				"id", s.id, "size", s.Size(), "need", advance)
		}
	}
	s.copyOut(s.read, dst)
	s.read += uint64(advance)
}

// Peek fills dst with the oldest bytes without consuming them.
func (s *Store) Peek(dst []byte) {
	if contract.Enabled {
		s.checkAllocated("Peek")
		if uint32(len(dst)) > s.Size() {
			contract.Violation("Peek", "peeking past the write cursor",
				"id", s.id, "size", s.Size(), "need", len(dst))
		}
	}
	s.copyOut(s.read, dst)
}

// Reserve claims size bytes (advancing by the aligned size) without writing them.
// The returned token survives Grow; it is retired by Clear, Dispose, or the
// reader moving past it.
func (s *Store) Reserve(size uint32) Token {
	advance := contract.Align4(size)
	if contract.Enabled {
		s.checkAllocated("Reserve")
		if s.Space() < advance {
			contract.Violation("Reserve", "reserve overflow",
				"id", s.id, "space", s.Space(), "need", advance)
		}
	}
	tok := Token{
		Position:   s.write + s.rebase,
		Size:       size,
		Generation: s.generation,
	}
	s.write += uint64(advance)
	return tok
}

// Fill copies src into the reserved region named by tok.
func (s *Store) Fill(tok Token, src []byte) {
	s.checkToken("Fill", tok, len(src))
	s.copyIn(tok.Position-s.rebase, src)
}

// Load copies the reserved region named by tok into dst.
func (s *Store) Load(tok Token, dst []byte) {
	s.checkToken("Load", tok, len(dst))
	s.copyOut(tok.Position-s.rebase, dst)
}

func (s *Store) checkToken(op string, tok Token, n int) {
	if !contract.Enabled {
		return
	}
	s.checkAllocated(op)
	switch {
	case tok.Generation != s.generation:
		contract.Violation(op, "stale reservation token",
			"id", s.id, "token_generation", tok.Generation, "generation", s.generation)
	case tok.Position < s.read+s.rebase:
		contract.Violation(op, "out of bound access: reservation already consumed",
			"id", s.id, "position", tok.Position, "read", s.read+s.rebase)
	case uint32(n) > tok.Size || tok.Position+uint64(contract.Align4(tok.Size)) > s.write+s.rebase:
		contract.Violation(op, "out of bound access",
			"id", s.id, "position", tok.Position, "size", n, "write", s.write+s.rebase)
	}
}

// Grow moves the live bytes into a new block of newCapacity (rounded up to 4)
// aligned to align. Cursors collapse to read=0, write=size; the shift is
// recorded so outstanding tokens keep addressing their slots.
//
// An allocation failure leaves the store untouched and is reported with
// api.ErrCodeAllocationFailed. A failure to free the old block is reported
// with its own code after the store has already switched to the new block.
func (s *Store) Grow(newCapacity, align uint32) error {
	newCapacity = contract.Align4(newCapacity)
	if contract.Enabled && newCapacity <= s.capacity {
		contract.Violation("Grow", "new capacity must be bigger than current",
			"id", s.id, "capacity", s.capacity, "requested", newCapacity)
	}
	mem, err := s.alloc.Allocate(newCapacity, align)
	if err != nil {
		return api.WrapError(api.ErrCodeAllocationFailed, "ring store grow failed", err).
			WithContext("id", s.id).
			WithContext("capacity", newCapacity)
	}

	size := s.Size()
	if size > 0 {
		head := uint32(s.read % uint64(s.capacity))
		first := min(size, s.capacity-head)
		// read head up to the physical end, then the wrapped tail from offset 0
		s.alloc.Copy(mem, s.mem[head:head+first])
		if first < size {
			s.alloc.Copy(mem[first:size], s.mem[:size-first])
		}
	}

	old := s.mem
	s.mem = mem
	s.capacity = newCapacity
	s.rebase += s.read
	s.read = 0
	s.write = uint64(size)
	s.grows++

	if old != nil {
		if err := s.alloc.Free(old); err != nil {
			return api.WrapError(api.ErrCodeInternal, "ring store failed to free old block", err).
				WithContext("id", s.id)
		}
	}
	return nil
}

// Clear drops all records in O(1). Memory is neither freed nor zeroed.
func (s *Store) Clear() {
	s.read = 0
	s.write = 0
	s.rebase = 0
	s.generation++
}

// Dispose frees the block. Disposing an empty or disposed store is a no-op.
func (s *Store) Dispose() error {
	if s.mem == nil {
		return nil
	}
	err := s.alloc.Free(s.mem)
	s.mem = nil
	s.capacity = 0
	s.read = 0
	s.write = 0
	s.rebase = 0
	s.generation++
	if err != nil {
		return api.WrapError(api.ErrCodeInternal, "ring store dispose failed", err).
			WithContext("id", s.id)
	}
	return nil
}

func (s *Store) checkAllocated(op string) {
	if s.mem == nil {
		contract.Violation(op, "null-access: store has no memory", "id", s.id)
	}
}

// copyIn writes p at absolute position pos, wrapping at the physical end.
func (s *Store) copyIn(pos uint64, p []byte) {
	off := uint32(pos % uint64(s.capacity))
	first := min(uint32(len(p)), s.capacity-off)
	s.alloc.Copy(s.mem[off:off+first], p[:first])
	if int(first) < len(p) {
		s.alloc.Copy(s.mem, p[first:])
	}
}

// copyOut reads len(dst) bytes at absolute position pos, wrapping at the physical end.
func (s *Store) copyOut(pos uint64, dst []byte) {
	off := uint32(pos % uint64(s.capacity))
	first := min(uint32(len(dst)), s.capacity-off)
	s.alloc.Copy(dst[:first], s.mem[off:off+first])
	if int(first) < len(dst) {
		s.alloc.Copy(dst[first:], s.mem)
	}
}
