// File: ring/options.go
// Author: momentics <momentics@gmail.com>
//
// Functional options for Buffer construction.

package ring

import "go.uber.org/zap"

// DefaultID tags standalone buffers that were not given an id.
const DefaultID uint32 = 0xDEADBEEF

// Observer receives buffer events. Implementations must be cheap: callbacks
// run on the producer's hot path.
type Observer interface {
	OnWrite(bytes uint32)
	OnRead(bytes uint32)
	OnReserve(bytes uint32)
	OnGrow(oldCapacity, newCapacity uint32)
}

// Option configures a Buffer.
type Option func(*options)

type options struct {
	id       uint32
	capacity uint32
	logger   *zap.Logger
	observer Observer
}

// WithID sets the diagnostic id.
func WithID(id uint32) Option {
	return func(o *options) { o.id = id }
}

// WithCapacity allocates capacity bytes up front instead of on first use.
func WithCapacity(capacity uint32) Option {
	return func(o *options) { o.capacity = capacity }
}

// WithLogger sets the logger used for grow and failure events.
// If logger is nil, this option is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver attaches an event observer such as control.RingMetrics.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func applyOptions(opts ...Option) *options {
	o := &options{
		id:     DefaultID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
