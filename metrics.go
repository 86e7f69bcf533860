package reqkit

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for request preparation and
// response error extraction. It is safe for concurrent use, and every Record
// method is a no-op on a nil collector.
type MetricsCollector struct {
	requestsPrepared *prometheus.CounterVec

	queryParams      prometheus.Counter
	headerCollisions prometheus.Counter

	requestErrors *prometheus.CounterVec

	callbacksSuppressed prometheus.Counter

	buildInfo *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		requestsPrepared: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "reqkit_requests_prepared_total",
				Help: "Total number of HTTP requests prepared",
			},
			[]string{"method"},
		),
		queryParams: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "reqkit_query_params_total",
				Help: "Total number of query fragments rendered",
			},
		),
		headerCollisions: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "reqkit_header_collisions_total",
				Help: "Total number of default headers replaced by an override",
			},
		),
		requestErrors: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "reqkit_request_errors_total",
				Help: "Total number of request errors extracted from failed responses",
			},
			[]string{"status_code", "source"},
		),
		callbacksSuppressed: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "reqkit_callbacks_suppressed_total",
				Help: "Total number of duplicate callback invocations suppressed",
			},
		),
		buildInfo: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reqkit_build_info",
				Help: "Build metadata of the reqkit library, always 1",
			},
			[]string{"version", "commit", "go_version"},
		),
	}

	info := GetVersionInfo()
	mc.buildInfo.WithLabelValues(info["version"], info["commit"], info["go_version"]).Set(1)

	if reg, ok := registry.(*prometheus.Registry); ok {
		mc.registry = reg
	}

	return mc
}

// RecordRequestPrepared increments the prepared request counter.
func (mc *MetricsCollector) RecordRequestPrepared(method string) {
	if mc == nil {
		return
	}

	mc.requestsPrepared.WithLabelValues(method).Inc()
}

// RecordQueryParams adds rendered query fragments.
func (mc *MetricsCollector) RecordQueryParams(n int) {
	if mc == nil || n <= 0 {
		return
	}

	mc.queryParams.Add(float64(n))
}

// RecordHeaderCollisions adds overridden default headers.
func (mc *MetricsCollector) RecordHeaderCollisions(n int) {
	if mc == nil || n <= 0 {
		return
	}

	mc.headerCollisions.Add(float64(n))
}

// RecordRequestError increments the extracted error counter.
func (mc *MetricsCollector) RecordRequestError(statusCode int, source ErrorSource) {
	if mc == nil {
		return
	}

	mc.requestErrors.WithLabelValues(strconv.Itoa(statusCode), string(source)).Inc()
}

// RecordCallbackSuppressed increments the suppressed callback counter.
func (mc *MetricsCollector) RecordCallbackSuppressed() {
	if mc == nil {
		return
	}

	mc.callbacksSuppressed.Inc()
}

// GetRegistry exposes the underlying prometheus registry. It is nil when the
// collector was built on a Registerer that is not a *prometheus.Registry.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	return mc.registry
}
