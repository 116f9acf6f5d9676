package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full scorecard recompute (resolve, score, persist)
	ScoreComputeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scorecard_compute_latency_seconds",
		Help:    "Latency of scorecard recomputations",
		Buckets: prometheus.DefBuckets,
	})

	// Recomputes that ran on the built-in default rubric because no
	// published version covered the month
	RubricFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scorecard_rubric_fallbacks_total",
		Help: "Total number of computations using the built-in default rubric",
	})
)

func Init() {
	prometheus.MustRegister(
		ScoreComputeLatency,
		RubricFallbacksTotal,
	)
}
