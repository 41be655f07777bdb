//go:build !linux
// +build !linux

// File: internal/concurrency/affinity_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without per-thread affinity: the OS thread lock is
// still taken, CPU selection is left to the scheduler.

package concurrency

func platformPinCurrentThread(cpuID int) (func(), error) { return func() {}, nil }
