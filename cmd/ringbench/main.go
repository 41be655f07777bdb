// File: cmd/ringbench/main.go
// Author: momentics <momentics@gmail.com>
//
// Package main provides the ringbench CLI.
//
// Usage:
//
//	ringbench run [flags]
//	ringbench version
//
// run starts one producer per thread slot of a RingBuffers pool, enqueues
// fixed-size event records, drains the pool round-robin and verifies that
// every slot came back in FIFO order.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
