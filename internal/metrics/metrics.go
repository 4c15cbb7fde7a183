package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal tracks permit submissions by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_service_submissions_total",
			Help: "Total number of permit submissions by outcome",
		},
		[]string{"outcome"},
	)

	// SubmissionDuration tracks end-to-end submission handling duration
	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "permit_service_submission_duration_seconds",
			Help:    "Permit submission handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// EmailsTotal tracks outbound emails by kind and status
	EmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_service_emails_total",
			Help: "Total number of outbound emails by kind and status",
		},
		[]string{"kind", "status"},
	)

	// RateLimitExceeded tracks rejected submissions due to rate limiting
	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "permit_service_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// SMTPUp reports the result of the last SMTP connectivity check
	SMTPUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "permit_service_smtp_up",
			Help: "1 when the last SMTP connectivity check succeeded, 0 otherwise",
		},
	)
)
