package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage labels.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageExtremes  = "extremes"
	StageRender    = "render"
)

// Manager owns the pipeline metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	recordsLoaded  prometheus.Counter
	participants   prometheus.Gauge
	stageDuration  *prometheus.HistogramVec
	pipelineErrors *prometheus.CounterVec
	rowsEmphasized *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry, never the default one.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoretable",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		enabled:          true,
		customLabels:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_loaded_total",
		Help:        "Total number of score records read from the input",
		ConstLabels: labels,
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants",
		Help:        "Number of distinct participants in the last run",
		ConstLabels: labels,
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "stage_duration_seconds",
			Help:        "Duration of each pipeline stage in seconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"stage"},
	)

	m.pipelineErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Pipeline failures by stage",
			ConstLabels: labels,
		},
		[]string{"stage"},
	)

	m.rowsEmphasized = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rows_emphasized",
			Help:        "Rows rendered per emphasis kind in the last run",
			ConstLabels: labels,
		},
		[]string{"kind"},
	)
}

// RecordRecordsLoaded adds n to the loaded records counter.
func (m *Manager) RecordRecordsLoaded(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.recordsLoaded.Add(float64(n))
}

// UpdateParticipants sets the participant gauge.
func (m *Manager) UpdateParticipants(n int) {
	if !m.enabled {
		return
	}
	m.participants.Set(float64(n))
}

// ObserveStage records how long a stage took.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	if !m.enabled {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordError counts a failure in the given stage.
func (m *Manager) RecordError(stage string) {
	if !m.enabled {
		return
	}
	m.pipelineErrors.WithLabelValues(stage).Inc()
}

// UpdateRowsEmphasized sets the number of rows rendered with an emphasis kind.
func (m *Manager) UpdateRowsEmphasized(kind string, n int) {
	if !m.enabled {
		return
	}
	m.rowsEmphasized.WithLabelValues(kind).Set(float64(n))
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, atomically.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }
