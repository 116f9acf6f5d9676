package scoring

import (
	"github.com/spenceodom/nes-staff-scorecard/domain"
	"github.com/spenceodom/nes-staff-scorecard/pkg/logger"
)

// The five qualitative metrics, in the order they appear on the scorecard.
// Deduction lists follow this order so recomputes are deterministic.
var supervisorMetrics = []string{
	"attitude",
	"reliability",
	"proactivity",
	"flexibility",
	"individual_interaction",
}

// ScoreSupervisor maps each rating label through the rubric's rating map and
// deducts the result from 100. A label missing from the map deducts nothing;
// it is logged so rubric or payload typos stay visible without blocking
// scoring.
func ScoreSupervisor(payload domain.SupervisorPayload, r domain.Rubric) CategoryResult {
	ratings := map[string]string{
		"attitude":               payload.Attitude,
		"reliability":            payload.Reliability,
		"proactivity":            payload.Proactivity,
		"flexibility":            payload.Flexibility,
		"individual_interaction": payload.IndividualInteraction,
	}

	var total float64
	deductions := make([]domain.Deduction, 0, len(supervisorMetrics))

	for _, metric := range supervisorMetrics {
		rating := ratings[metric]

		deduction, ok := r.SupervisorRatingMap[rating]
		if !ok {
			logger.Warn("Rating label not in rubric, no deduction applied", "metric", metric, "rating", rating)
			continue
		}

		if deduction == 0 {
			continue
		}

		total += deduction
		deductions = append(deductions, domain.Deduction{
			Metric:          metric,
			Value:           rating,
			DeductionPoints: deduction,
			RuleID:          "supervisor_rating_" + metric,
		})
	}

	return CategoryResult{Score: clampScore(total), Deductions: deductions}
}
