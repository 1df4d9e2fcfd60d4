// Package metrics defines and registers all custom Prometheus metrics for the
// PetConnect marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics use promauto, so importing the package registers them with the
// default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "petconnect"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts user sign-in and sign-up attempts.
// Labels:
//   - operation: "sign_in" or "sign_up"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of user authentication attempts, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AdminLoginAttemptsTotal counts admin sign-in attempts.
// Label:
//   - outcome: "success", "failure", or "locked_out"
var AdminLoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_login_attempts_total",
		Help:      "Total number of admin sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AdminSessionValidationsTotal counts per-request admin session checks.
// Label:
//   - result: "valid" or "invalid"
var AdminSessionValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_session_validations_total",
		Help:      "Total number of admin session validations, by result.",
	},
	[]string{"result"},
)

// ── Routing metrics ───────────────────────────────────────────────────────────

// RouteDecisionsTotal counts routing gate outcomes.
// Label:
//   - action: "stay" or "redirect"
var RouteDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_decisions_total",
		Help:      "Total number of routing gate decisions, by action.",
	},
	[]string{"action"},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// CareRequestTransitionsTotal counts care request status transitions.
// Label:
//   - status: the status the request moved to (e.g. "accepted")
var CareRequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "care_request_transitions_total",
		Help:      "Total number of care request status transitions, by new status.",
	},
	[]string{"status"},
)

// OrdersCreatedTotal counts orders placed through checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed through checkout.",
	},
)

// ActivityQueueDepth tracks pending audit entries per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
