// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for ring buffer activity. RingObserver satisfies
// ring.Observer; children are resolved once per buffer so the hot path only
// touches pre-bound counters.

package control

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/hioload-ringbuf/api"
)

// RingMetrics holds labelled collectors shared by every buffer of a pool.
type RingMetrics struct {
	writes       *prometheus.CounterVec
	reads        *prometheus.CounterVec
	reserves     *prometheus.CounterVec
	grows        *prometheus.CounterVec
	bytesWritten *prometheus.CounterVec
	bytesRead    *prometheus.CounterVec
	capacity     *prometheus.GaugeVec
}

// NewRingMetrics creates the collectors and registers them with reg.
func NewRingMetrics(reg prometheus.Registerer, namespace string) (*RingMetrics, error) {
	labels := []string{"buffer"}
	m := &RingMetrics{
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "writes_total",
			Help:      "Total number of records enqueued",
		}, labels),
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "reads_total",
			Help:      "Total number of records dequeued",
		}, labels),
		reserves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "reserves_total",
			Help:      "Total number of slots reserved",
		}, labels),
		grows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "grows_total",
			Help:      "Total number of grow-and-copy reallocations",
		}, labels),
		bytesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "written_bytes_total",
			Help:      "Total aligned bytes written or reserved",
		}, labels),
		bytesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "read_bytes_total",
			Help:      "Total aligned bytes dequeued",
		}, labels),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring",
			Name:      "capacity_bytes",
			Help:      "Current allocated capacity of the buffer",
		}, labels),
	}
	for _, c := range []prometheus.Collector{m.writes, m.reads, m.reserves, m.grows, m.bytesWritten, m.bytesRead, m.capacity} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if stderrors.As(err, &already) {
				return nil, api.WrapError(api.ErrCodeInvalidArgument, "ring metrics already registered", err)
			}
			return nil, api.WrapError(api.ErrCodeInternal, "failed to register ring metrics", err)
		}
	}
	return m, nil
}

// Observer returns the event sink for the buffer tagged id.
func (m *RingMetrics) Observer(id uint32) *RingObserver {
	label := strconv.FormatUint(uint64(id), 10)
	return &RingObserver{
		writes:       m.writes.WithLabelValues(label),
		reads:        m.reads.WithLabelValues(label),
		reserves:     m.reserves.WithLabelValues(label),
		grows:        m.grows.WithLabelValues(label),
		bytesWritten: m.bytesWritten.WithLabelValues(label),
		bytesRead:    m.bytesRead.WithLabelValues(label),
		capacity:     m.capacity.WithLabelValues(label),
	}
}

// RingObserver records the events of a single buffer.
type RingObserver struct {
	writes       prometheus.Counter
	reads        prometheus.Counter
	reserves     prometheus.Counter
	grows        prometheus.Counter
	bytesWritten prometheus.Counter
	bytesRead    prometheus.Counter
	capacity     prometheus.Gauge
}

func (o *RingObserver) OnWrite(bytes uint32) {
	o.writes.Inc()
	o.bytesWritten.Add(float64(bytes))
}

func (o *RingObserver) OnRead(bytes uint32) {
	o.reads.Inc()
	o.bytesRead.Add(float64(bytes))
}

func (o *RingObserver) OnReserve(bytes uint32) {
	o.reserves.Inc()
	o.bytesWritten.Add(float64(bytes))
}

func (o *RingObserver) OnGrow(oldCapacity, newCapacity uint32) {
	o.grows.Inc()
	o.capacity.Set(float64(newCapacity))
}

// MetricsRegistry owns a private Prometheus registry with runtime collectors
// and the ring collectors.
type MetricsRegistry struct {
	registry *prometheus.Registry
	Ring     *RingMetrics
}

// NewMetricsRegistry creates a registry under namespace.
func NewMetricsRegistry(namespace string) (*MetricsRegistry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rm, err := NewRingMetrics(reg, namespace)
	if err != nil {
		return nil, err
	}
	return &MetricsRegistry{registry: reg, Ring: rm}, nil
}

// Registry returns the underlying Prometheus registry.
func (mr *MetricsRegistry) Registry() *prometheus.Registry {
	return mr.registry
}

// RegisterGaugeFunc exposes fn as a gauge, e.g. the outstanding bytes of a pool.
func (mr *MetricsRegistry) RegisterGaugeFunc(namespace, name, help string, fn func() float64) error {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
	if err := mr.registry.Register(g); err != nil {
		return api.WrapError(api.ErrCodeInvalidArgument, "failed to register gauge", err).
			WithContext("name", name)
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (mr *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(mr.registry, promhttp.HandlerOpts{})
}
