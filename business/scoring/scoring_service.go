package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spenceodom/nes-staff-scorecard/domain"
	"github.com/spenceodom/nes-staff-scorecard/pkg/logger"
	"github.com/spenceodom/nes-staff-scorecard/pkg/metrics"
)

// SubmissionRepository contract interface
type SubmissionRepository interface {
	FindByMonthAndEmployee(ctx context.Context, month string, employeeID uint) ([]domain.Submission, error)
}

// ScoreRepository contract interface
type ScoreRepository interface {
	Upsert(ctx context.Context, score *domain.ComputedScore) error
	FindByMonthAndEmployee(ctx context.Context, month string, employeeID uint) (domain.ComputedScore, bool, error)
}

// RubricResolver contract interface
type RubricResolver interface {
	GetRubricForMonth(ctx context.Context, month string) (string, domain.Rubric, error)
}

type ScoringService struct {
	submissionRepo SubmissionRepository
	scoreRepo      ScoreRepository
	rubrics        RubricResolver
}

func NewScoringService(
	submissionRepo SubmissionRepository,
	scoreRepo ScoreRepository,
	rubrics RubricResolver,
) *ScoringService {
	return &ScoringService{
		submissionRepo: submissionRepo,
		scoreRepo:      scoreRepo,
		rubrics:        rubrics,
	}
}

// ComputeScoresForEmployee recomputes the full scorecard row for one
// (month, employee) from whatever submissions currently exist and replaces
// the stored row. It is a pure function of (submissions, rubric) apart from
// the computed_at stamp, so it is safe to re-run at any time: collaborators
// trigger it after each accepted submission, and a crash between submission
// insert and recompute is repaired by simply triggering it again.
//
// The final score appears only once all three category scores exist; until
// then category scores surface incrementally with a nil final score. On any
// store failure nothing is persisted and the error is returned as-is.
func (s *ScoringService) ComputeScoresForEmployee(ctx context.Context, month string, employeeID uint, area string) (domain.ComputedScore, error) {
	start := time.Now()

	version, rub, err := s.rubrics.GetRubricForMonth(ctx, month)
	if err != nil {
		return domain.ComputedScore{}, err
	}

	if version == domain.DefaultRubricVersion {
		metrics.RubricFallbacksTotal.Inc()
	}

	submissions, err := s.submissionRepo.FindByMonthAndEmployee(ctx, month, employeeID)
	if err != nil {
		logger.Error("Failed to fetch submissions for scoring", err)
		return domain.ComputedScore{}, err
	}

	score := domain.ComputedScore{
		Month:         month,
		EmployeeID:    employeeID,
		Area:          area,
		RubricVersion: version,
		Deductions: domain.DeductionSet{
			Admin:      []domain.Deduction{},
			Supervisor: []domain.Deduction{},
			Recruiter:  []domain.Deduction{},
		},
	}

	for _, sub := range submissions {
		switch sub.Role {
		case domain.RoleAdmin:
			var payload domain.AdminPayload
			if err := json.Unmarshal(sub.Payload, &payload); err != nil {
				return domain.ComputedScore{}, fmt.Errorf("failed to decode admin payload: %w", err)
			}
			result := ScoreAdmin(payload, rub)
			score.AdminScore = intPtr(result.Score)
			score.Deductions.Admin = result.Deductions

		case domain.RoleSupervisor:
			var payload domain.SupervisorPayload
			if err := json.Unmarshal(sub.Payload, &payload); err != nil {
				return domain.ComputedScore{}, fmt.Errorf("failed to decode supervisor payload: %w", err)
			}
			result := ScoreSupervisor(payload, rub)
			score.SupervisorScore = intPtr(result.Score)
			score.Deductions.Supervisor = result.Deductions

		case domain.RoleRecruiter:
			var payload domain.RecruiterPayload
			if err := json.Unmarshal(sub.Payload, &payload); err != nil {
				return domain.ComputedScore{}, fmt.Errorf("failed to decode recruiter payload: %w", err)
			}
			result := ScoreRecruiter(payload, rub)
			score.RecruiterScore = intPtr(result.Score)
			score.Deductions.Recruiter = result.Deductions

		default:
			logger.Warn("Submission with unknown role skipped", "role", sub.Role, "month", month, "employee_id", employeeID)
		}
	}

	if score.AdminScore != nil && score.SupervisorScore != nil && score.RecruiterScore != nil {
		final := int(math.Round(
			float64(*score.AdminScore)*rub.Weights.Admin +
				float64(*score.SupervisorScore)*rub.Weights.Supervisor +
				float64(*score.RecruiterScore)*rub.Weights.Recruiter,
		))
		score.FinalScore = &final
	}

	raw, err := json.Marshal(score.Deductions)
	if err != nil {
		return domain.ComputedScore{}, fmt.Errorf("failed to serialize deductions: %w", err)
	}
	score.DeductionsRaw = raw
	score.ComputedAt = time.Now().UTC()

	if err := s.scoreRepo.Upsert(ctx, &score); err != nil {
		logger.Error("Failed to persist computed score", err)
		return domain.ComputedScore{}, err
	}

	ScoreComputationsTotal.WithLabelValues(version, strconv.FormatBool(score.FinalScore != nil)).Inc()
	metrics.ScoreComputeLatency.Observe(time.Since(start).Seconds())

	return score, nil
}

// GetComputedScore reads back the stored scorecard row, if any. Used by
// dashboard collaborators.
func (s *ScoringService) GetComputedScore(ctx context.Context, month string, employeeID uint) (domain.ComputedScore, bool, error) {
	score, ok, err := s.scoreRepo.FindByMonthAndEmployee(ctx, month, employeeID)
	if err != nil {
		logger.Error("Failed to fetch computed score", err)
		return domain.ComputedScore{}, false, err
	}

	return score, ok, nil
}

func intPtr(v int) *int {
	return &v
}
