// Package api
// Author: momentics <momentics@gmail.com>
//
// Live introspection of ring buffers and pools.

package api

// Debug exposes named probes returning point-in-time state, e.g. per-slot RingStats.
type Debug interface {
	// DumpState evaluates every probe.
	DumpState() map[string]any

	// RegisterProbe adds or replaces a probe.
	RegisterProbe(name string, fn func() any)

	// UnregisterProbe removes a probe; pools call it on Dispose.
	UnregisterProbe(name string)
}
