package rubric

import "github.com/spenceodom/nes-staff-scorecard/domain"

// FindDeductionForCount scans buckets in list order and returns the deduction
// of the first bucket whose range contains count. A count above the last
// bucket's max reuses the last bucket's deduction: bucket lists are
// open-ended at the top (max=999 by convention). Overlaps resolve
// first-match, so authors keep buckets ascending and non-overlapping.
func FindDeductionForCount(count int, buckets []domain.ErrorBucket) float64 {
	if count == 0 || len(buckets) == 0 {
		return 0
	}

	for _, b := range buckets {
		if count >= b.Min && count <= b.Max {
			return b.Deduction
		}
	}

	last := buckets[len(buckets)-1]
	if count > last.Max {
		return last.Deduction
	}

	return 0
}

// FindTieredPenalty distinguishes a single occurrence from multiple. Only the
// "1" and "2+" tiers exist; a missing tier means no penalty.
func FindTieredPenalty(count int, tiers map[string]float64) float64 {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return tiers["1"]
	default:
		return tiers["2+"]
	}
}
