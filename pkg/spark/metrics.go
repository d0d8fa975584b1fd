package spark

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yourusername/spark/pkg/spark/http1"
)

// Outcome labels for the messages_total counter
const (
	OutcomeOK             = "ok"
	OutcomeInvalidVersion = "invalid_version"
	OutcomeInvalidPath    = "invalid_path"
	OutcomeInvalidQuery   = "invalid_query"
	OutcomeInvalidHeader  = "invalid_header"
	OutcomeIO             = "io"
	OutcomeOther          = "other"
)

// Outcome classifies the error returned by a serialization call.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, http1.ErrInvalidVersion):
		return OutcomeInvalidVersion
	case errors.Is(err, http1.ErrInvalidPath):
		return OutcomeInvalidPath
	case errors.Is(err, http1.ErrInvalidQuery):
		return OutcomeInvalidQuery
	case errors.Is(err, http1.ErrInvalidHeader):
		return OutcomeInvalidHeader
	case errors.Is(err, http1.ErrIO):
		return OutcomeIO
	default:
		return OutcomeOther
	}
}

// Metrics counts serialized messages and bytes and exposes the state of a
// BufferPool. It implements prometheus.Collector; register it once per
// registry.
type Metrics struct {
	messages *prometheus.CounterVec
	bytes    prometheus.Counter

	pool       *BufferPool
	poolGets   *prometheus.Desc
	poolPuts   *prometheus.Desc
	poolInUse  *prometheus.Desc
	poolStaged *prometheus.Desc
}

// NewMetrics creates the collector. pool may be nil, in which case no pool
// metrics are exported.
func NewMetrics(pool *BufferPool) *Metrics {
	return &Metrics{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spark",
				Subsystem: "serializer",
				Name:      "messages_total",
				Help:      "Total number of serialized message heads by outcome",
			},
			[]string{"outcome"},
		),
		bytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "spark",
				Subsystem: "serializer",
				Name:      "bytes_total",
				Help:      "Total bytes written to sinks, partial writes included",
			},
		),
		pool: pool,
		poolGets: prometheus.NewDesc(
			"spark_buffer_pool_gets_total",
			"Total number of buffer Get operations",
			nil, nil,
		),
		poolPuts: prometheus.NewDesc(
			"spark_buffer_pool_puts_total",
			"Total number of buffer Put operations",
			nil, nil,
		),
		poolInUse: prometheus.NewDesc(
			"spark_buffer_pool_outstanding",
			"Buffers taken from the pool and not yet returned",
			nil, nil,
		),
		poolStaged: prometheus.NewDesc(
			"spark_buffer_pool_staged_bytes_total",
			"Total bytes staged in pooled buffers",
			nil, nil,
		),
	}
}

// Observe records the result of one WriteTo-style call.
func (m *Metrics) Observe(n int64, err error) {
	m.messages.WithLabelValues(Outcome(err)).Inc()
	if n > 0 {
		m.bytes.Add(float64(n))
	}
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.messages.Describe(ch)
	m.bytes.Describe(ch)
	if m.pool != nil {
		ch <- m.poolGets
		ch <- m.poolPuts
		ch <- m.poolInUse
		ch <- m.poolStaged
	}
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.messages.Collect(ch)
	m.bytes.Collect(ch)
	if m.pool == nil {
		return
	}

	pm := m.pool.GetMetrics()
	ch <- prometheus.MustNewConstMetric(m.poolGets, prometheus.CounterValue, float64(pm.Gets))
	ch <- prometheus.MustNewConstMetric(m.poolPuts, prometheus.CounterValue, float64(pm.Puts))
	ch <- prometheus.MustNewConstMetric(m.poolInUse, prometheus.GaugeValue, float64(pm.Outstanding))
	ch <- prometheus.MustNewConstMetric(m.poolStaged, prometheus.CounterValue, float64(pm.BytesStaged))
}
