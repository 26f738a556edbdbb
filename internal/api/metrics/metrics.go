// Package metrics defines and registers the custom Prometheus metrics of the
// travel client. It is the single source of truth for metric names, labels
// and help strings.
//
// All metrics register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel"

// Outcome label values shared by the counters below.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// RemoteCallsTotal counts backend exchanges.
// Labels:
//   - operation: e.g. "login", "list_destinations"
//   - outcome: "ok" or "error"
var RemoteCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_calls_total",
		Help:      "Total number of backend requests, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// RemoteCallDuration measures backend round trips, including failed ones.
var RemoteCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_call_duration_seconds",
		Help:      "Duration of backend requests from send to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Controller metrics ────────────────────────────────────────────────────────

// SessionTransitionsTotal counts macro-state changes.
// Label:
//   - to: "logged_in" or "logged_out"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of logged-in/logged-out transitions.",
	},
	[]string{"to"},
)

// DestinationsLoaded is the size of the most recently fetched collection.
var DestinationsLoaded = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "destinations_loaded",
		Help:      "Number of destinations in the last successful fetch.",
	},
)

// ── Intent queue metrics ──────────────────────────────────────────────────────

// IntentsProcessedTotal counts intents executed by queue workers.
// Labels:
//   - kind: the intent kind, e.g. "add_destination"
//   - outcome: "ok" or "error"
var IntentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intents_processed_total",
		Help:      "Total number of intents executed, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// IntentsQueueDepth tracks the intents waiting in each worker channel.
var IntentsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "intents_queue_depth",
		Help:      "Current number of intents pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// Outcome maps an error to the outcome label value.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
