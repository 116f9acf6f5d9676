package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Version label reported when no published rubric covers the target month
// and the built-in default is used instead.
const DefaultRubricVersion = "default"

type Weights struct {
	Admin      float64 `json:"admin" validate:"gte=0"`
	Supervisor float64 `json:"supervisor" validate:"gte=0"`
	Recruiter  float64 `json:"recruiter" validate:"gte=0"`
}

// ErrorBucket maps an inclusive error-count range to a deduction amount.
// Bucket lists are kept ascending and non-overlapping by the rubric author;
// the top bucket is open-ended in practice (max=999).
type ErrorBucket struct {
	Min       int     `json:"min" validate:"gte=0"`
	Max       int     `json:"max" validate:"gtefield=Min"`
	Deduction float64 `json:"deduction" validate:"gte=0"`
}

type AdminRules struct {
	Metrics map[string][]ErrorBucket `json:"metrics" validate:"dive,dive"`
}

type RecruiterRules struct {
	OverdueTrainingPenaltyPer float64            `json:"overdue_training_penalty_per" validate:"gte=0"`
	EDAPenalty                map[string]float64 `json:"eda_penalty" validate:"dive,gte=0"`
	RetrainingPenalty         map[string]float64 `json:"retraining_penalty" validate:"dive,gte=0"`
}

type Rubric struct {
	Weights             Weights            `json:"weights"`
	SupervisorRatingMap map[string]float64 `json:"supervisor_rating_map" validate:"dive,gte=0"`
	AdminRules          AdminRules         `json:"admin_rules"`
	RecruiterRules      RecruiterRules     `json:"recruiter_rules"`
}

// RubricVersion is an immutable configuration snapshot. Versions are
// append-only: new rules are published under a new version label with a new
// effective month, existing rows are never updated or deleted.
type RubricVersion struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Version        string         `gorm:"column:version;uniqueIndex;not null" json:"version"`
	EffectiveMonth string         `gorm:"column:effective_month;index;not null" json:"effective_month"`
	PublishedBy    string         `gorm:"column:published_by" json:"published_by"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	RubricRaw      datatypes.JSON `gorm:"column:rubric;type:jsonb" json:"-"`
	Rubric         Rubric         `gorm:"-" json:"rubric"`
}

func (RubricVersion) TableName() string {
	return "rubric_versions"
}
