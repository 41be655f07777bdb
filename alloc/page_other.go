//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd
// +build !linux,!darwin,!freebsd,!netbsd,!openbsd

// File: alloc/page_other.go
// Author: momentics <momentics@gmail.com>
//
// Stub page allocator for platforms without anonymous mmap support.

package alloc

import "github.com/momentics/hioload-ringbuf/api"

// Page is unavailable on this platform.
type Page struct{}

// NewPage always fails with api.ErrNotSupported.
func NewPage() (*Page, error) {
	return nil, api.ErrNotSupported
}

func (p *Page) PageSize() uint32 { return 0 }

func (p *Page) Allocate(size, align uint32) ([]byte, error) { return nil, api.ErrNotSupported }

func (p *Page) Free(mem []byte) error { return nil }

func (p *Page) Copy(dst, src []byte) int { return copy(dst, src) }

func (p *Page) Zero(dst []byte) { clear(dst) }
