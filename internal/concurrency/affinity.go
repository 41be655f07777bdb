// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity entry points.

package concurrency

import (
	"runtime"
)

// NumCPUs returns the number of logical CPUs.
func NumCPUs() int {
	return runtime.NumCPU()
}

// PinCurrentThread locks the calling goroutine to its OS thread and, where the
// platform supports it and cpuID >= 0, restricts that thread to cpuID mod NumCPUs().
// The returned func restores the previous mask and releases the thread lock;
// it is valid even when err is non-nil.
func PinCurrentThread(cpuID int) (release func(), err error) {
	runtime.LockOSThread()
	if cpuID < 0 {
		return runtime.UnlockOSThread, nil
	}
	restore, err := platformPinCurrentThread(cpuID % NumCPUs())
	return func() {
		restore()
		runtime.UnlockOSThread()
	}, err
}
