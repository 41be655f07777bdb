//go:build linux || darwin || freebsd || netbsd || openbsd
// +build linux darwin freebsd netbsd openbsd

// File: alloc/page_unix_test.go
// Author: momentics <momentics@gmail.com>

package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ringbuf/api"
)

func TestPageRoundTrip(t *testing.T) {
	p, err := NewPage()
	require.NoError(t, err)
	require.NotZero(t, p.PageSize())

	mem, err := p.Allocate(100, 64)
	require.NoError(t, err)
	assert.Len(t, mem, 100)
	assert.Equal(t, int(p.PageSize()), cap(mem))
	assert.True(t, IsAligned(mem, p.PageSize()))

	for i := range mem {
		mem[i] = byte(i)
	}
	assert.Equal(t, byte(99), mem[99])
	require.NoError(t, p.Free(mem))
	require.NoError(t, p.Free(nil))
}

func TestPageRejectsHugeAlignment(t *testing.T) {
	p, err := NewPage()
	require.NoError(t, err)
	_, err = p.Allocate(16, p.PageSize()*2)
	assert.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(err))
}

func TestNewPageKind(t *testing.T) {
	a, err := New("mmap")
	require.NoError(t, err)
	assert.IsType(t, &Page{}, a)
}
