package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spenceodom/nes-staff-scorecard/business/scoring"
	"github.com/spenceodom/nes-staff-scorecard/domain"
)

type ComputedScoreRepository struct {
	DB *gorm.DB
}

var _ scoring.ScoreRepository = (*ComputedScoreRepository)(nil)

func NewComputedScoreRepository(db *gorm.DB) *ComputedScoreRepository {
	return &ComputedScoreRepository{DB: db}
}

// Upsert replaces the scorecard row for (month, employee_id) in full. The
// ON CONFLICT update is a single statement, so a recompute either lands
// completely or not at all; concurrent recomputes resolve last-write-wins,
// which is safe because every recompute reads submission state fresh.
func (r *ComputedScoreRepository) Upsert(ctx context.Context, score *domain.ComputedScore) error {
	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "month"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"area",
				"rubric_version",
				"admin_score",
				"supervisor_score",
				"recruiter_score",
				"final_score",
				"deductions",
				"computed_at",
			}),
		},
	).Create(score).Error; err != nil {
		return fmt.Errorf("failed to upsert computed score: %w", err)
	}

	return nil
}

func (r *ComputedScoreRepository) FindByMonthAndEmployee(ctx context.Context, month string, employeeID uint) (domain.ComputedScore, bool, error) {
	var score domain.ComputedScore

	err := r.DB.WithContext(ctx).
		Where("month = ? AND employee_id = ?", month, employeeID).
		First(&score).Error
	if err == gorm.ErrRecordNotFound {
		return domain.ComputedScore{}, false, nil
	}
	if err != nil {
		return domain.ComputedScore{}, false, fmt.Errorf("failed to query computed_scores: %w", err)
	}

	if len(score.DeductionsRaw) > 0 {
		if err := json.Unmarshal(score.DeductionsRaw, &score.Deductions); err != nil {
			return domain.ComputedScore{}, false, fmt.Errorf("failed to unmarshal deductions: %w", err)
		}
	}

	return score, true, nil
}

// FindByMonth lists every computed scorecard for a month, optionally
// filtered by area. Read path for the dashboard collaborator.
func (r *ComputedScoreRepository) FindByMonth(ctx context.Context, month, area string) ([]domain.ComputedScore, error) {
	query := r.DB.WithContext(ctx).Where("month = ?", month)
	if area != "" {
		query = query.Where("area = ?", area)
	}

	var scores []domain.ComputedScore
	if err := query.Order("employee_id ASC").Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to query computed_scores: %w", err)
	}

	for i := range scores {
		if len(scores[i].DeductionsRaw) > 0 {
			if err := json.Unmarshal(scores[i].DeductionsRaw, &scores[i].Deductions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal deductions: %w", err)
			}
		}
	}

	return scores, nil
}
