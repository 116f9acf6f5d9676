package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScoreComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_computations_total",
			Help: "Count of scorecard computations by rubric version and completeness.",
		},
		[]string{"rubric_version", "complete"},
	)
)

func init() {
	prometheus.MustRegister(ScoreComputationsTotal)
}
