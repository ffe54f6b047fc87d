// Package metrics defines the custom Prometheus metrics of the agency API.
// HTTP request metrics come from the echoprometheus middleware; the counters
// here track business outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agl"

// LoginAttemptsTotal counts admin login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// PostMutationsTotal counts blog post writes.
// Labels:
//   - op: "create", "update" or "delete"
//   - result: "ok", "invalid", "not_found", "conflict" or "error"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of blog post mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// FormSubmissionsTotal counts public form submissions.
// Labels:
//   - form: "contact" or "consultation"
//   - result: "relayed", "invalid", "delivery_failed" or "error"
var FormSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Total number of public form submissions, by form and result.",
	},
	[]string{"form", "result"},
)
