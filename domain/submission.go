package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleRecruiter  = "recruiter"
)

// ErrDuplicateSubmission is returned when a second submission arrives for a
// (month, employee, role) triple that already has one. The unique index on
// the submissions table is the source of truth; the repository maps the
// driver's unique-violation error to this sentinel.
var ErrDuplicateSubmission = errors.New("submission already exists for this month, employee and role")

// Submission is one evaluator's monthly input for one employee. At most one
// row may exist per (month, employee, role); rows are immutable once stored.
type Submission struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	Month       string         `gorm:"column:month;not null;uniqueIndex:idx_submissions_month_employee_role" json:"month"`
	EmployeeID  uint           `gorm:"column:employee_id;not null;uniqueIndex:idx_submissions_month_employee_role" json:"employee_id"`
	Role        string         `gorm:"column:role;not null;uniqueIndex:idx_submissions_month_employee_role" json:"role"`
	SubmittedBy string         `gorm:"column:submitted_by" json:"submitted_by"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Payload     datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Role-specific payload shapes. Payloads are validated by the accepting
// collaborator before storage; the scoring engine trusts them.
type (
	SupervisorPayload struct {
		Attitude              string `json:"attitude"`
		Reliability           string `json:"reliability"`
		Proactivity           string `json:"proactivity"`
		Flexibility           string `json:"flexibility"`
		IndividualInteraction string `json:"individual_interaction"`
	}

	AdminPayload struct {
		ISPGoalErrors             int `json:"isp_goal_errors"`
		ISPBehaviorErrors         int `json:"isp_behavior_errors"`
		MARErrors                 int `json:"mar_errors"`
		AttendanceTardiesCallouts int `json:"attendance_tardies_callouts"`
		AttendanceNCNS            int `json:"attendance_ncns"`
	}

	RecruiterPayload struct {
		OverdueTrainings int `json:"overdue_trainings"`
		Retrainings      int `json:"retrainings"`
		EDAsPast6Months  int `json:"edas_past_6_months"`
	}
)
