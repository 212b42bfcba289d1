// Package metrics provides Prometheus metrics for tool invocations and
// device controller calls.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	toolInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "tools",
		Name:      "invocations_total",
		Help:      "Tool invocations by tool name and outcome",
	}, []string{"tool", "outcome"})

	deviceCallFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lednode",
		Subsystem: "device",
		Name:      "call_failures_total",
		Help:      "Device controller call failures by operation and error code",
	}, []string{"operation", "code"})

	deviceCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lednode",
		Subsystem: "device",
		Name:      "call_duration_seconds",
		Help:      "Device controller call latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

// RecordToolInvocation counts one tool invocation with its outcome
// ("ok" or "error").
func RecordToolInvocation(tool, outcome string) {
	toolInvocations.WithLabelValues(tool, outcome).Inc()
}

// RecordDeviceCallFailure counts one failed device controller call.
func RecordDeviceCallFailure(operation, code string) {
	deviceCallFailures.WithLabelValues(operation, code).Inc()
}

// ObserveDeviceCallDuration records the latency of a device call.
func ObserveDeviceCallDuration(operation string, seconds float64) {
	deviceCallDuration.WithLabelValues(operation).Observe(seconds)
}

// HTTPHandler returns the Prometheus metrics HTTP handler.
// This collects all promauto-registered metrics automatically.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}
