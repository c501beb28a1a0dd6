// Package metrics defines all custom Prometheus metrics for the sales
// reporting API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reporting"

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsSubmittedTotal counts report submissions that reached storage.
// Label:
//   - result: "created" (new report) or "updated" (existing key overwritten)
var ReportsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of report submissions, by upsert outcome.",
	},
	[]string{"result"},
)

// ReportQueriesTotal counts report listings.
// Label:
//   - role: caller role ("leader" or "boss")
var ReportQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_queries_total",
		Help:      "Total number of report list queries, by caller role.",
	},
	[]string{"role"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accepted self-registrations (all pending).
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accepted pending registrations.",
	},
)

// ── Employee metrics ──────────────────────────────────────────────────────────

// EmployeesCreatedTotal counts employees added to the registry.
// Label:
//   - department: the employee's department
var EmployeesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_created_total",
		Help:      "Total number of employees registered, by department.",
	},
	[]string{"department"},
)
