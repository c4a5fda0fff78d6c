// Package metrics defines and registers all custom Prometheus metrics for the
// news reader. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsreader"

// ── Remote API metrics ────────────────────────────────────────────────────────

// GraphQLRequestsTotal counts executed remote operations.
// Labels:
//   - operation: operation name taken from the document (e.g. "Login")
//   - outcome: "ok" or the fault kind ("transport", "remote", "network")
var GraphQLRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_requests_total",
		Help:      "Total number of GraphQL operations sent to the remote API.",
	},
	[]string{"operation", "outcome"},
)

// GraphQLRequestDuration measures the round trip of a single remote operation.
var GraphQLRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_request_duration_seconds",
		Help:      "Duration of GraphQL operations against the remote API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session store transitions.
// Labels:
//   - operation: restore, login, register, logout, verify_email, send_verification_email
//   - outcome: "ok", "rejected" (unverified login), "noop" or the fault kind
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session transitions, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GuardDecisionsTotal counts route guard evaluations by decision kind.
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by decision.",
	},
	[]string{"decision"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// OptimisticRollbacksTotal counts local feed patches undone after a failed request.
// Label:
//   - operation: "save_article" or "mark_article_read"
var OptimisticRollbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "optimistic_rollbacks_total",
		Help:      "Total number of optimistic feed updates rolled back.",
	},
	[]string{"operation"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDroppedTotal counts notifications discarded because the queue was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped on a full dispatcher queue.",
	},
)

// NotificationsQueueDepth tracks notifications waiting for delivery.
var NotificationsQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in the dispatcher queue.",
	},
)
