// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Producer-side concurrency helpers: one goroutine per producer thread index,
// locked to its OS thread and optionally pinned to a CPU, fanned out with an
// errgroup so the first failure cancels the rest.
package concurrency
