// Package metrics exposes Prometheus counters for the survey service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsNamespace is the namespace for all survey service metrics.
const MetricsNamespace = "soundscape"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// SubmissionsStored counts accepted survey submissions.
	SubmissionsStored prometheus.Counter

	// BreakdownFailures counts aggregation sub-queries that degraded to an
	// empty result, labeled by breakdown name.
	BreakdownFailures *prometheus.CounterVec

	// TotalCountFailures counts failures of the dedicated total-count query,
	// kept separate because it feeds a headline statistic.
	TotalCountFailures prometheus.Counter

	// RateLimited counts intake requests rejected by the rate limiter.
	RateLimited prometheus.Counter
}

// New creates and registers all service metrics. Passing nil uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SubmissionsStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "submissions_stored_total",
			Help:      "Total number of survey submissions stored",
		}),
		BreakdownFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "breakdown_failures_total",
			Help:      "Aggregation sub-queries that degraded to an empty result",
		}, []string{"breakdown"}),
		TotalCountFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "total_count_failures_total",
			Help:      "Failures of the dashboard total-count query",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "rate_limited_requests_total",
			Help:      "Intake requests rejected by the rate limiter",
		}),
	}
}
