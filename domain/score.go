package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Deduction explains one point-loss event that contributed to a category
// score. Value holds the raw input that triggered the rule: an error count
// for admin/recruiter rules, a rating label for supervisor rules.
type Deduction struct {
	Metric          string  `json:"metric"`
	Value           any     `json:"value"`
	DeductionPoints float64 `json:"deduction_points"`
	RuleID          string  `json:"rule_id"`
}

// DeductionSet groups the per-category deduction lists. Field order is fixed
// so the serialized form is byte-stable across recomputes.
type DeductionSet struct {
	Admin      []Deduction `json:"admin"`
	Supervisor []Deduction `json:"supervisor"`
	Recruiter  []Deduction `json:"recruiter"`
}

// ComputedScore is the materialized scorecard for one (month, employee).
// It is replaced in full on every recompute; category scores are present iff
// the matching submission exists, the final score only when all three do.
type ComputedScore struct {
	Month           string         `gorm:"column:month;primaryKey" json:"month"`
	EmployeeID      uint           `gorm:"column:employee_id;primaryKey" json:"employee_id"`
	Area            string         `gorm:"column:area" json:"area"`
	RubricVersion   string         `gorm:"column:rubric_version;not null" json:"rubric_version"`
	AdminScore      *int           `gorm:"column:admin_score" json:"admin_score"`
	SupervisorScore *int           `gorm:"column:supervisor_score" json:"supervisor_score"`
	RecruiterScore  *int           `gorm:"column:recruiter_score" json:"recruiter_score"`
	FinalScore      *int           `gorm:"column:final_score" json:"final_score"`
	ComputedAt      time.Time      `gorm:"column:computed_at;not null" json:"computed_at"`
	DeductionsRaw   datatypes.JSON `gorm:"column:deductions;type:jsonb" json:"-"`
	Deductions      DeductionSet   `gorm:"-" json:"deductions"`
}

func (ComputedScore) TableName() string {
	return "computed_scores"
}
