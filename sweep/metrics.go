package sweep

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the harvester.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestsTotal    prometheus.Counter
	RequestDuration  prometheus.Histogram
	ItemsTotal       prometheus.Counter
	DuplicatesTotal  prometheus.Counter
	RowsWrittenTotal prometheus.Counter
	WriteFailures    prometheus.Counter
	ErrorsTotal      *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_requests_total",
			Help: "Total category page requests issued.",
		},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harvest_request_duration_seconds",
			Help:    "Latency of category page requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	items := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_items_total",
			Help: "Total product records extracted.",
		},
	)
	duplicates := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_duplicates_total",
			Help: "Records dropped because the name was already seen this sweep.",
		},
	)
	rowsWritten := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_rows_written_total",
			Help: "Rows accepted by the store.",
		},
	)
	writeFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_write_failures_total",
			Help: "Category sub-batches the store rejected.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvest_errors_total",
			Help: "Total fetch errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, items, duplicates, rowsWritten, writeFailures, errorsTotal)

	return &Metrics{
		Registry:         registry,
		RequestsTotal:    requests,
		RequestDuration:  requestDuration,
		ItemsTotal:       items,
		DuplicatesTotal:  duplicates,
		RowsWrittenTotal: rowsWritten,
		WriteFailures:    writeFailures,
		ErrorsTotal:      errorsTotal,
	}
}

// IncRequests increments the page request counter.
func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.RequestsTotal.Inc()
}

// ObserveDuration records one page request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// AddItems counts extracted records.
func (m *Metrics) AddItems(n int) {
	if m == nil {
		return
	}
	m.ItemsTotal.Add(float64(n))
}

// AddDuplicates counts records dropped by the deduplicator.
func (m *Metrics) AddDuplicates(n int) {
	if m == nil {
		return
	}
	m.DuplicatesTotal.Add(float64(n))
}

// AddRowsWritten counts rows accepted by the store.
func (m *Metrics) AddRowsWritten(n int) {
	if m == nil {
		return
	}
	m.RowsWrittenTotal.Add(float64(n))
}

// IncWriteFailures counts rejected sub-batches.
func (m *Metrics) IncWriteFailures() {
	if m == nil {
		return
	}
	m.WriteFailures.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
