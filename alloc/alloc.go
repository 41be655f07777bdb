// File: alloc/alloc.go
// Author: momentics <momentics@gmail.com>
//
// Allocator selection by name and shared alignment helpers.

package alloc

import (
	"strings"
	"unsafe"

	"github.com/momentics/hioload-ringbuf/api"
)

// Allocator kinds accepted by New.
const (
	KindHeap = "heap"
	KindPage = "page"
)

// New returns the allocator registered under kind.
func New(kind string) (api.Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindHeap:
		return NewHeap(), nil
	case KindPage, "mmap":
		p, err := NewPage()
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, api.NewError(api.ErrCodeInvalidArgument, "unknown allocator kind").
			WithContext("kind", kind)
	}
}

// normalizeAlign maps 0 to api.DefaultAlign and rejects non powers of two.
func normalizeAlign(align uint32) (uint32, error) {
	if align == 0 {
		return api.DefaultAlign, nil
	}
	if align&(align-1) != 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "alignment must be a power of two").
			WithContext("align", align)
	}
	return align, nil
}

// alignOffset returns how many bytes past p the next align boundary lies.
func alignOffset(p unsafe.Pointer, align uint32) uint32 {
	mis := uint32(uintptr(p) & uintptr(align-1))
	if mis == 0 {
		return 0
	}
	return align - mis
}

// IsAligned reports whether the first byte of mem sits on an align boundary.
func IsAligned(mem []byte, align uint32) bool {
	if len(mem) == 0 {
		return true
	}
	return alignOffset(unsafe.Pointer(&mem[0]), align) == 0
}
