package scoring

import (
	"math"

	"github.com/spenceodom/nes-staff-scorecard/domain"
)

// CategoryResult is one role's contribution to the scorecard: a 0-100 score
// plus one deduction per metric that actually cost points.
type CategoryResult struct {
	Score      int
	Deductions []domain.Deduction
}

// clampScore turns an accumulated deduction total into a category score:
// start at 100, subtract, floor at 0. No metric can push a score above 100
// or below 0.
func clampScore(totalDeduction float64) int {
	score := 100 - totalDeduction
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}
