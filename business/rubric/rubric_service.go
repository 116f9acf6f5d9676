package rubric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/spenceodom/nes-staff-scorecard/domain"
	"github.com/spenceodom/nes-staff-scorecard/pkg/logger"
)

// VersionRepository contract interface
type VersionRepository interface {
	Create(ctx context.Context, version *domain.RubricVersion) error
	FindLatestEffective(ctx context.Context, month string) (domain.RubricVersion, bool, error)
	FindAll(ctx context.Context) ([]domain.RubricVersion, error)
}

// Resolved is a (version, rubric) pair as returned by month resolution.
type Resolved struct {
	Version string        `json:"version"`
	Rubric  domain.Rubric `json:"rubric"`
}

// Cache is an optional read-through cache for resolved rubrics. Cache
// failures are never surfaced; resolution falls back to the store.
type Cache interface {
	GetRubric(ctx context.Context, month string) (Resolved, bool, error)
	SetRubric(ctx context.Context, month string, resolved Resolved) error
}

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

const weightSumTolerance = 0.001

type RubricService struct {
	versionRepo VersionRepository
	cache       Cache
	validate    *validator.Validate
}

// NewRubricService builds the rubric resolver. cache may be nil to disable
// caching entirely.
func NewRubricService(versionRepo VersionRepository, cache Cache, validate *validator.Validate) *RubricService {
	return &RubricService{
		versionRepo: versionRepo,
		cache:       cache,
		validate:    validate,
	}
}

// GetRubricForMonth selects the latest published version whose effective
// month is <= month. Versions are append-only, so resolving a past month
// always yields the version that was effective then, no matter what has been
// published since. With nothing applicable the built-in default is used under
// the "default" sentinel label; that fallback is logged for audit but is not
// an error. A store failure is fatal and never falls back.
func (s *RubricService) GetRubricForMonth(ctx context.Context, month string) (string, domain.Rubric, error) {
	if !monthPattern.MatchString(month) {
		return "", domain.Rubric{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	if s.cache != nil {
		if resolved, ok, err := s.cache.GetRubric(ctx, month); err == nil && ok {
			return resolved.Version, resolved.Rubric, nil
		}
	}

	version, ok, err := s.versionRepo.FindLatestEffective(ctx, month)
	if err != nil {
		logger.Error("Failed to resolve rubric version", err)
		return "", domain.Rubric{}, err
	}

	if !ok {
		logger.Warn("No rubric version covers month, using built-in default", "month", month)
		return domain.DefaultRubricVersion, DefaultRubric(), nil
	}

	if s.cache != nil {
		if err := s.cache.SetRubric(ctx, month, Resolved{Version: version.Version, Rubric: version.Rubric}); err != nil {
			logger.Warn("Failed to cache resolved rubric", "month", month, "error", err)
		}
	}

	return version.Version, version.Rubric, nil
}

// PublishVersion appends a new rubric version after validating its content.
// Published versions are immutable; a rule change means a new version with a
// new effective month.
func (s *RubricService) PublishVersion(ctx context.Context, version *domain.RubricVersion) error {
	if version.Version == "" {
		return errors.New("version label is required")
	}

	if !monthPattern.MatchString(version.EffectiveMonth) {
		return fmt.Errorf("invalid effective month %q, expected YYYY-MM", version.EffectiveMonth)
	}

	if err := s.validate.Struct(version.Rubric); err != nil {
		logger.Error("Rubric content failed validation", err)
		return fmt.Errorf("invalid rubric: %w", err)
	}

	if err := validateRubricRules(version.Rubric); err != nil {
		logger.Error("Rubric content failed validation", err)
		return fmt.Errorf("invalid rubric: %w", err)
	}

	if len(version.RubricRaw) == 0 {
		raw, err := json.Marshal(version.Rubric)
		if err != nil {
			return fmt.Errorf("failed to serialize rubric: %w", err)
		}
		version.RubricRaw = raw
	}

	if err := s.versionRepo.Create(ctx, version); err != nil {
		logger.Error("Failed to publish rubric version", err)
		return err
	}

	logger.Info("Published rubric version", "version", version.Version, "effective_month", version.EffectiveMonth)
	return nil
}

// ListVersions returns every published version, newest effective month first.
func (s *RubricService) ListVersions(ctx context.Context) ([]domain.RubricVersion, error) {
	versions, err := s.versionRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to list rubric versions", err)
		return nil, err
	}

	return versions, nil
}

// validateRubricRules covers the constraints struct tags cannot express:
// weights summing to 1.0, ascending non-overlapping buckets, tier keys.
func validateRubricRules(r domain.Rubric) error {
	sum := r.Weights.Admin + r.Weights.Supervisor + r.Weights.Recruiter
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", sum)
	}

	for metric, buckets := range r.AdminRules.Metrics {
		prevMax := 0
		for i, b := range buckets {
			if b.Min > b.Max {
				return fmt.Errorf("metric %s bucket %d: min %d exceeds max %d", metric, i, b.Min, b.Max)
			}
			if i > 0 && b.Min <= prevMax {
				return fmt.Errorf("metric %s bucket %d: overlaps previous bucket", metric, i)
			}
			prevMax = b.Max
		}
	}

	for name, tiers := range map[string]map[string]float64{
		"eda_penalty":        r.RecruiterRules.EDAPenalty,
		"retraining_penalty": r.RecruiterRules.RetrainingPenalty,
	} {
		for key := range tiers {
			if key != "1" && key != "2+" {
				return fmt.Errorf("%s: unknown tier %q, only \"1\" and \"2+\" are supported", name, key)
			}
		}
	}

	return nil
}
