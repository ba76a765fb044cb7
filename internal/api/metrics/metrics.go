// Package metrics defines the custom Prometheus collectors of the portal
// gateway. Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "condo_portal"

// ── Auth flow ────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (backend said no) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts explicit and forced sign-outs.
// Label:
//   - reason: "user" or "unauthorized"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of sessions cleared, by reason.",
	},
	[]string{"reason"},
)

// RegistrationStepsTotal counts registration wizard commands.
// Labels:
//   - action: "next", "back" or "submit"
//   - result: "ok", "invalid", "rejected" or "error"
var RegistrationStepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_steps_total",
		Help:      "Total number of registration wizard commands, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Session & routing ────────────────────────────────────────────────────────

// SessionRestoresTotal counts guard restores.
// Label:
//   - state: the resulting guard state, "loading" when the store failed
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restores, by resulting guard state.",
	},
	[]string{"state"},
)

// ViewDispatchTotal counts dashboard view resolutions.
// Labels:
//   - role: "admin" or "resident"
//   - fallback: "true" when the requested key degraded to the home view
var ViewDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_dispatch_total",
		Help:      "Total number of view resolutions, by role and fallback.",
	},
	[]string{"role", "fallback"},
)

// SupersededTotal counts responses dropped because a newer request for the
// same session and scope started.
var SupersededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "superseded_responses_total",
		Help:      "Total number of responses discarded as stale, by scope.",
	},
	[]string{"scope"},
)

// ── Backend & audit ──────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the condominium API.
// Labels:
//   - endpoint: the API path template, e.g. "/api/auth/login/"
//   - status: HTTP status code, or "network" when no response arrived
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the condominium API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

// PanelFetchErrorsTotal counts isolated shell fetch failures.
// Label:
//   - panel: "notifications" or "unit"
var PanelFetchErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_fetch_errors_total",
		Help:      "Total number of shell side-panel fetch failures, by panel.",
	},
	[]string{"panel"},
)

// AuditQueueDepth tracks pending audit events per dispatcher worker.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit events dropped because a worker queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped on a full queue.",
	},
)
