// Package metrics holds shared Prometheus collectors and defaults.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// EvaluationOutcomes counts engine evaluations by terminal outcome
// (MALFORMED, UNSOLVABLE, RESOLVED, SOLVED).
var EvaluationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
	Name: "upc_evaluations_total",
	Help: "Number of UPC evaluations by outcome.",
}, []string{"outcome"})
