// Package metrics provides Prometheus metrics for the Mergington activities service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 5 * time.Second
)

// Manager manages all Prometheus metrics for the activities service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer
	gatherer         *prometheus.Registry

	// Registry business metrics
	signups              *prometheus.CounterVec
	unregistrations      *prometheus.CounterVec
	rejections           *prometheus.CounterVec
	activitiesTotal      prometheus.Gauge
	participantsTotal    prometheus.Gauge
	participantsByName   *prometheus.GaugeVec
	registryOpLatency    *prometheus.HistogramVec
	seedActivitiesLoaded prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var global atomic.Pointer[Manager] //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Init()
}

// Init replaces the global manager with one built from opts on a fresh
// custom registry, so default Go metrics stay out of /metrics. Call it
// before handlers capture GetRegistry.
func Init(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	all := append(append([]Option{}, opts...), WithPrometheusRegistry(registry))
	m := NewManager(all...)
	m.gatherer = registry
	global.Store(m)
	return m
}

func current() *Manager { return global.Load() }

// RefreshInterval returns how often the global manager's gauges should be refreshed.
func RefreshInterval() time.Duration { return current().RefreshInterval() }

// Enabled reports whether the global manager records counters and histograms.
func Enabled() bool { return current().Enabled() }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval returns how often gauge metrics should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.signups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("signups_total"),
		Help:        "Total number of successful signups by activity",
		ConstLabels: labels,
	}, []string{"activity"})

	m.unregistrations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("unregistrations_total"),
		Help:        "Total number of successful unregistrations by activity",
		ConstLabels: labels,
	}, []string{"activity"})

	m.rejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rejections_total"),
		Help:        "Signup and unregister requests rejected by the registry, by operation and reason",
		ConstLabels: labels,
	}, []string{"operation", "reason"})

	m.activitiesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("activities"),
		Help:        "Number of activities in the registry",
		ConstLabels: labels,
	})

	m.participantsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("participants"),
		Help:        "Total registered participants across all activities",
		ConstLabels: labels,
	})

	m.participantsByName = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("activity_participants"),
		Help:        "Registered participants per activity",
		ConstLabels: labels,
	}, []string{"activity"})

	m.registryOpLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("registry_operation_latency_milliseconds"),
		Help:        "Registry operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.seedActivitiesLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("seed_activities_loaded"),
		Help:        "Number of activities loaded from seed data at startup",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Total number of errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Total number of errors by HTTP endpoint",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("error_latency_milliseconds"),
			Help:        "Latency of requests that ended in an error, in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RecordSignup increments the signup counter for an activity.
func RecordSignup(activity string) {
	if !current().enabled {
		return
	}
	current().signups.WithLabelValues(activity).Inc()
}

// RecordUnregistration increments the unregistration counter for an activity.
func RecordUnregistration(activity string) {
	if !current().enabled {
		return
	}
	current().unregistrations.WithLabelValues(activity).Inc()
}

// RecordRejection counts a signup or unregister refused by the registry.
// reason is one of not_found, already_signed_up, not_signed_up, activity_full.
func RecordRejection(operation, reason string) {
	if !current().enabled {
		return
	}
	current().rejections.WithLabelValues(operation, reason).Inc()
}

// UpdateActivityCount sets the number of activities.
func UpdateActivityCount(count int) {
	current().activitiesTotal.Set(float64(count))
}

// UpdateParticipantCount sets the total participant count.
func UpdateParticipantCount(count int) {
	current().participantsTotal.Set(float64(count))
}

// UpdateActivityParticipants sets the participant gauge of one activity.
func UpdateActivityParticipants(activity string, count int) {
	current().participantsByName.WithLabelValues(activity).Set(float64(count))
}

// UpdateSeedActivitiesLoaded records how many activities the seed provided.
func UpdateSeedActivitiesLoaded(count int) {
	current().seedActivitiesLoaded.Set(float64(count))
}

// RecordRegistryLatency records a registry operation latency in milliseconds.
func RecordRegistryLatency(operation string, latencyMs float64) {
	if !current().enabled {
		return
	}
	current().registryOpLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !current().enabled {
		return
	}
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !current().enabled {
		return
	}
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if !current().enabled {
		return
	}
	current().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !current().enabled {
		return
	}
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records error latency.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !current().enabled {
		return
	}
	current().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage updates system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates goroutine count.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry of the global manager.
func GetRegistry() *prometheus.Registry {
	return current().gatherer
}
