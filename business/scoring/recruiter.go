package scoring

import (
	"github.com/spenceodom/nes-staff-scorecard/business/rubric"
	"github.com/spenceodom/nes-staff-scorecard/domain"
)

// ScoreRecruiter applies three independent rules, each only when its count is
// positive: a linear per-unit penalty for overdue trainings, then tiered
// penalties for EDAs and retrainings. The overdue penalty is unbounded; the
// floor clamp keeps the score at 0 for large counts.
func ScoreRecruiter(payload domain.RecruiterPayload, r domain.Rubric) CategoryResult {
	var total float64
	deductions := make([]domain.Deduction, 0, 3)

	if payload.OverdueTrainings > 0 {
		deduction := float64(payload.OverdueTrainings) * r.RecruiterRules.OverdueTrainingPenaltyPer
		if deduction > 0 {
			total += deduction
			deductions = append(deductions, domain.Deduction{
				Metric:          "overdue_trainings",
				Value:           payload.OverdueTrainings,
				DeductionPoints: deduction,
				RuleID:          "recruiter_overdue_trainings",
			})
		}
	}

	if payload.EDAsPast6Months > 0 {
		deduction := rubric.FindTieredPenalty(payload.EDAsPast6Months, r.RecruiterRules.EDAPenalty)
		if deduction > 0 {
			total += deduction
			deductions = append(deductions, domain.Deduction{
				Metric:          "edas_past_6_months",
				Value:           payload.EDAsPast6Months,
				DeductionPoints: deduction,
				RuleID:          "recruiter_eda_penalty",
			})
		}
	}

	if payload.Retrainings > 0 {
		deduction := rubric.FindTieredPenalty(payload.Retrainings, r.RecruiterRules.RetrainingPenalty)
		if deduction > 0 {
			total += deduction
			deductions = append(deductions, domain.Deduction{
				Metric:          "retrainings",
				Value:           payload.Retrainings,
				DeductionPoints: deduction,
				RuleID:          "recruiter_retraining_penalty",
			})
		}
	}

	return CategoryResult{Score: clampScore(total), Deductions: deductions}
}
