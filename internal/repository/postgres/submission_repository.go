package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spenceodom/nes-staff-scorecard/business/scoring"
	"github.com/spenceodom/nes-staff-scorecard/domain"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

var _ scoring.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Create stores one evaluator submission. The unique index on
// (month, employee_id, role) is the concurrency safety net: of two
// concurrent attempts exactly one succeeds, the other gets
// domain.ErrDuplicateSubmission.
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}

	err := r.DB.WithContext(ctx).Create(submission).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateSubmission
	}
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// FindByMonthAndEmployee returns the 0-3 submissions recorded for one
// employee in one month, in role order for deterministic scoring.
func (r *SubmissionRepository) FindByMonthAndEmployee(ctx context.Context, month string, employeeID uint) ([]domain.Submission, error) {
	var submissions []domain.Submission

	err := r.DB.WithContext(ctx).
		Where("month = ? AND employee_id = ?", month, employeeID).
		Order("role ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}

	return submissions, nil
}
