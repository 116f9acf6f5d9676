package rubric

import "github.com/spenceodom/nes-staff-scorecard/domain"

const (
	defaultWeightAdmin      = 0.4
	defaultWeightSupervisor = 0.4
	defaultWeightRecruiter  = 0.2

	defaultOverdueTrainingPenaltyPer = 15
)

var defaultErrorBuckets = []domain.ErrorBucket{
	{Min: 1, Max: 2, Deduction: 5},
	{Min: 3, Max: 5, Deduction: 10},
	{Min: 6, Max: 999, Deduction: 20},
}

// DefaultRubric is the built-in fallback used when no published version
// covers a month. It guarantees scoring never fails for lack of
// configuration. Treated as read-only constant data.
func DefaultRubric() domain.Rubric {
	return domain.Rubric{
		Weights: domain.Weights{
			Admin:      defaultWeightAdmin,
			Supervisor: defaultWeightSupervisor,
			Recruiter:  defaultWeightRecruiter,
		},
		SupervisorRatingMap: map[string]float64{
			"Exceeds Expectations": 0,
			"Meets Expectations":   8,
			"Needs Improvement":    16,
			"Unsatisfactory":       25,
		},
		AdminRules: domain.AdminRules{
			Metrics: map[string][]domain.ErrorBucket{
				"isp_goal_errors":             defaultErrorBuckets,
				"isp_behavior_errors":         defaultErrorBuckets,
				"mar_errors":                  defaultErrorBuckets,
				"attendance_tardies_callouts": defaultErrorBuckets,
				"attendance_ncns":             defaultErrorBuckets,
			},
		},
		RecruiterRules: domain.RecruiterRules{
			OverdueTrainingPenaltyPer: defaultOverdueTrainingPenaltyPer,
			EDAPenalty:                map[string]float64{"1": 40, "2+": 60},
			RetrainingPenalty:         map[string]float64{"1": 25, "2+": 40},
		},
	}
}
