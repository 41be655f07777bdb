//go:build linux || darwin || freebsd || netbsd || openbsd
// +build linux darwin freebsd netbsd openbsd

// File: alloc/page_unix.go
// Author: momentics <momentics@gmail.com>
//
// Anonymous-mapping allocator. Each block is its own private mapping rounded up
// to the page size, so freeing returns memory to the OS immediately.

package alloc

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-ringbuf/api"
)

// Page allocates ring memory from anonymous private mappings.
type Page struct {
	pageSize uint32
}

// NewPage returns a page allocator for the running platform.
func NewPage() (*Page, error) {
	return &Page{pageSize: uint32(unix.Getpagesize())}, nil
}

// PageSize returns the OS page size used for rounding.
func (p *Page) PageSize() uint32 { return p.pageSize }

// Allocate maps ceil(size/pagesize) pages. Alignment above the page size is rejected.
func (p *Page) Allocate(size, align uint32) ([]byte, error) {
	align, err := normalizeAlign(align)
	if err != nil {
		return nil, err
	}
	if align > p.pageSize {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "alignment exceeds page size").
			WithContext("align", align).
			WithContext("page_size", p.pageSize)
	}
	if size == 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "zero-sized allocation")
	}
	n := (uint64(size) + uint64(p.pageSize) - 1) / uint64(p.pageSize) * uint64(p.pageSize)
	mem, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeAllocationFailed, "mmap failed", err).
			WithContext("size", n)
	}
	// cap keeps the full mapping so Free can hand it back to Munmap.
	return mem[:size], nil
}

// Free unmaps the block.
func (p *Page) Free(mem []byte) error {
	if cap(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem[:cap(mem)]); err != nil {
		return api.WrapError(api.ErrCodeInternal, "munmap failed", err)
	}
	return nil
}

// Copy is a plain memmove.
func (p *Page) Copy(dst, src []byte) int { return copy(dst, src) }

// Zero clears dst.
func (p *Page) Zero(dst []byte) { clear(dst) }

var _ api.Allocator = (*Page)(nil)
