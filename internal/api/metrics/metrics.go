// Package metrics defines the marketplace's custom Prometheus metrics.
// HTTP request metrics come from the echoprometheus middleware; the ones here
// count business events and are registered with the default registry on
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "freelancer"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "rejected", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

var JobsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created.",
	},
)

var JobsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_deleted_total",
		Help:      "Total number of job postings deleted by their owner.",
	},
)

// JobsListedSize observes how many jobs a listing returned.
var JobsListedSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "jobs_listed_size",
		Help:      "Number of jobs returned by the public listing.",
		Buckets:   []float64{0, 10, 25, 50, 100, 150, 200},
	},
)

// ── Proposal metrics ──────────────────────────────────────────────────────────

// ProposalsSubmittedTotal counts proposal submissions.
// Label:
//   - result: "created" or "duplicate"
var ProposalsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_submitted_total",
		Help:      "Total number of proposal submissions, by outcome.",
	},
	[]string{"result"},
)
