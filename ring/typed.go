// File: ring/typed.go
// Author: momentics <momentics@gmail.com>
//
// Typed wrappers over the byte API. T must be plain: no pointers, slices,
// strings, maps, interfaces, channels or funcs. The check runs in default
// builds only; the size of T is the record size.

package ring

import (
	"unsafe"

	"github.com/momentics/hioload-ringbuf/internal/contract"
)

// SizeOf returns the record size T occupies before alignment.
func SizeOf[T any]() uint32 {
	var zero T
	return uint32(unsafe.Sizeof(zero))
}

// AlignedSizeOf returns the number of bytes one T advances the cursors by.
func AlignedSizeOf[T any]() uint32 {
	return contract.Align4(SizeOf[T]())
}

func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Enqueue appends v.
func Enqueue[T any](b *Buffer, v T) error {
	contract.CheckPlain[T]("Enqueue")
	return b.Write(bytesOf(&v))
}

// EnqueueUnaligned appends v without rounding its size up to 4.
func EnqueueUnaligned[T any](b *Buffer, v T) error {
	contract.CheckPlain[T]("EnqueueUnaligned")
	return b.WriteUnaligned(bytesOf(&v))
}

// Dequeue removes the oldest record, interpreted as T.
func Dequeue[T any](b *Buffer) T {
	contract.CheckPlain[T]("Dequeue")
	var v T
	b.Read(bytesOf(&v))
	return v
}

// DequeueUnaligned is the counterpart of EnqueueUnaligned.
func DequeueUnaligned[T any](b *Buffer) T {
	contract.CheckPlain[T]("DequeueUnaligned")
	var v T
	b.ReadUnaligned(bytesOf(&v))
	return v
}

// Peek returns the oldest record as T without removing it.
func Peek[T any](b *Buffer) T {
	contract.CheckPlain[T]("Peek")
	var v T
	b.Peek(bytesOf(&v))
	return v
}

// ReserveEnqueue claims a slot for a T whose value is supplied later.
// The slot is dequeued in order like any other record; whatever was stored
// through the reservation by then is what the reader sees. Further writes,
// including ones that grow the buffer, do not retire the reservation; Clear
// and Dispose do, and the slot must be filled before it is dequeued.
func ReserveEnqueue[T any](b *Buffer) (Reservation[T], error) {
	contract.CheckPlain[T]("ReserveEnqueue")
	tok, err := b.Reserve(SizeOf[T]())
	if err != nil {
		return Reservation[T]{}, err
	}
	return Reservation[T]{buf: b, tok: tok}, nil
}

// AccessReserved reads the T stored in a reserved slot.
func AccessReserved[T any](b *Buffer, tok Token) T {
	var v T
	b.Load(tok, bytesOf(&v))
	return v
}

// SetReserved stores v into a reserved slot.
func SetReserved[T any](b *Buffer, tok Token, v T) {
	b.Fill(tok, bytesOf(&v))
}

// Reservation is a handle to a reserved slot of type T.
type Reservation[T any] struct {
	buf *Buffer
	tok Token
}

// Token returns the underlying slot token.
func (r Reservation[T]) Token() Token { return r.tok }

// Set stores v into the slot.
func (r Reservation[T]) Set(v T) { SetReserved(r.buf, r.tok, v) }

// Get returns the current content of the slot.
func (r Reservation[T]) Get() T { return AccessReserved[T](r.buf, r.tok) }

// Update applies fn to the slot content in place.
func (r Reservation[T]) Update(fn func(*T)) {
	v := r.Get()
	fn(&v)
	r.Set(v)
}
