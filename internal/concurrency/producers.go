// File: internal/concurrency/producers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProducerFunc runs on behalf of thread index.
type ProducerFunc func(ctx context.Context, index int) error

// RunOptions tunes RunPerThread.
type RunOptions struct {
	// Pin restricts producer i to CPU i mod NumCPUs().
	Pin bool
	// Logger receives pinning warnings. Nil disables logging.
	Logger *zap.Logger
}

// RunPerThread starts n producers, one OS-thread-locked goroutine each, and
// waits for all of them. The first error cancels ctx for the others and is
// returned. A panic inside fn is converted into an error for that index.
func RunPerThread(ctx context.Context, n int, opts RunOptions, fn ProducerFunc) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		index := i
		g.Go(func() (err error) {
			cpuID := -1
			if opts.Pin {
				cpuID = index
			}
			release, perr := PinCurrentThread(cpuID)
			if perr != nil {
				logger.Warn("producer affinity not applied",
					zap.Int("index", index), zap.Error(perr))
			}
			defer release()
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("producer %d panicked: %v", index, r)
				}
			}()
			return fn(gctx, index)
		})
	}
	return g.Wait()
}
