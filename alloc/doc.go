// Package alloc
// Author: momentics <momentics@gmail.com>
//
// Concrete api.Allocator services for ring stores: Go-heap blocks with explicit
// alignment, anonymous mmap pages on unix, and an accounting wrapper.
// All allocators are safe for concurrent use.
package alloc
