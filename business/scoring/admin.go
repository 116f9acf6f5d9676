package scoring

import (
	"github.com/spenceodom/nes-staff-scorecard/business/rubric"
	"github.com/spenceodom/nes-staff-scorecard/domain"
)

// The five error-count metrics, in scorecard order.
var adminMetrics = []string{
	"isp_goal_errors",
	"isp_behavior_errors",
	"mar_errors",
	"attendance_tardies_callouts",
	"attendance_ncns",
}

// ScoreAdmin runs each error count through the rubric's bucket table for that
// metric. A metric the rubric does not configure is skipped entirely.
func ScoreAdmin(payload domain.AdminPayload, r domain.Rubric) CategoryResult {
	counts := map[string]int{
		"isp_goal_errors":             payload.ISPGoalErrors,
		"isp_behavior_errors":         payload.ISPBehaviorErrors,
		"mar_errors":                  payload.MARErrors,
		"attendance_tardies_callouts": payload.AttendanceTardiesCallouts,
		"attendance_ncns":             payload.AttendanceNCNS,
	}

	var total float64
	deductions := make([]domain.Deduction, 0, len(adminMetrics))

	for _, metric := range adminMetrics {
		buckets, ok := r.AdminRules.Metrics[metric]
		if !ok {
			continue
		}

		count := counts[metric]
		deduction := rubric.FindDeductionForCount(count, buckets)
		if deduction == 0 {
			continue
		}

		total += deduction
		deductions = append(deductions, domain.Deduction{
			Metric:          metric,
			Value:           count,
			DeductionPoints: deduction,
			RuleID:          "admin_" + metric + "_bucket",
		})
	}

	return CategoryResult{Score: clampScore(total), Deductions: deductions}
}
