package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/spenceodom/nes-staff-scorecard/business/rubric"
	"github.com/spenceodom/nes-staff-scorecard/domain"
)

type RubricVersionRepository struct {
	DB *gorm.DB
}

var _ rubric.VersionRepository = (*RubricVersionRepository)(nil)

func NewRubricVersionRepository(db *gorm.DB) *RubricVersionRepository {
	return &RubricVersionRepository{DB: db}
}

// Create appends a new version. The version label carries a unique index, so
// republishing an existing label fails at the store; rows are never updated.
func (r *RubricVersionRepository) Create(ctx context.Context, version *domain.RubricVersion) error {
	if len(version.RubricRaw) == 0 {
		raw, err := json.Marshal(version.Rubric)
		if err != nil {
			return fmt.Errorf("failed to marshal rubric: %w", err)
		}
		version.RubricRaw = raw
	}

	if err := r.DB.WithContext(ctx).Create(version).Error; err != nil {
		return fmt.Errorf("failed to create rubric version: %w", err)
	}

	return nil
}

// FindLatestEffective returns the version with the greatest effective month
// that is still <= month. Months are YYYY-MM strings, so lexicographic order
// is chronological order.
func (r *RubricVersionRepository) FindLatestEffective(ctx context.Context, month string) (domain.RubricVersion, bool, error) {
	var version domain.RubricVersion

	err := r.DB.WithContext(ctx).
		Where("effective_month <= ?", month).
		Order("effective_month DESC").
		First(&version).Error
	if err == gorm.ErrRecordNotFound {
		return domain.RubricVersion{}, false, nil
	}
	if err != nil {
		return domain.RubricVersion{}, false, fmt.Errorf("failed to query rubric_versions: %w", err)
	}

	if err := json.Unmarshal(version.RubricRaw, &version.Rubric); err != nil {
		return domain.RubricVersion{}, false, fmt.Errorf("failed to unmarshal rubric for version %s: %w", version.Version, err)
	}

	return version, true, nil
}

func (r *RubricVersionRepository) FindAll(ctx context.Context) ([]domain.RubricVersion, error) {
	var versions []domain.RubricVersion

	err := r.DB.WithContext(ctx).
		Order("effective_month DESC").
		Find(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query rubric_versions: %w", err)
	}

	for i := range versions {
		if err := json.Unmarshal(versions[i].RubricRaw, &versions[i].Rubric); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rubric for version %s: %w", versions[i].Version, err)
		}
	}

	return versions, nil
}
