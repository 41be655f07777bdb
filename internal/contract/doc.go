// File: internal/contract/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Debug-build contract checks for ring stores and pools.
//
// Checks are on by default. Building with -tags ringunchecked compiles them
// out of the hot path: misuse (reading past the write cursor, stale reservation
// tokens, pointerful record types) is then undefined, bounded only by the Go
// runtime's own slice checks.
package contract
