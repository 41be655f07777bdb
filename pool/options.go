// File: pool/options.go
// Author: momentics <momentics@gmail.com>

package pool

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-ringbuf/api"
	"github.com/momentics/hioload-ringbuf/control"
)

// Option configures RingBuffers.
type Option func(*options)

type options struct {
	name            string
	initialCapacity uint32
	logger          *zap.Logger
	metrics         *control.RingMetrics
	probes          api.Debug
}

// WithName sets the prefix used for debug probes. Defaults to "ring".
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithInitialCapacity pre-allocates capacity bytes in every slot.
func WithInitialCapacity(capacity uint32) Option {
	return func(o *options) { o.initialCapacity = capacity }
}

// WithLogger sets the logger handed to the pool and each slot.
// If logger is nil, this option is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches a per-slot Prometheus observer.
func WithMetrics(m *control.RingMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithDebugProbes registers one stats probe per slot.
func WithDebugProbes(d api.Debug) Option {
	return func(o *options) { o.probes = d }
}

func applyOptions(opts ...Option) *options {
	o := &options{
		name:   "ring",
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
