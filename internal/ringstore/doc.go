// File: internal/ringstore/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Circular byte store over a single allocator-owned block.
//
// Read and write cursors are monotonic counters reduced modulo capacity only
// when an address is computed. Records are opaque bytes; the store performs no
// type tagging and trusts the caller to read back what it wrote. Contract
// checks are governed by internal/contract.
package ringstore
