//go:build !integration

package rubric

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spenceodom/nes-staff-scorecard/domain"
)

type fakeVersionRepo struct {
	versions []domain.RubricVersion
	err      error
	created  []*domain.RubricVersion
}

func (f *fakeVersionRepo) Create(ctx context.Context, version *domain.RubricVersion) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, version)
	return nil
}

func (f *fakeVersionRepo) FindLatestEffective(ctx context.Context, month string) (domain.RubricVersion, bool, error) {
	if f.err != nil {
		return domain.RubricVersion{}, false, f.err
	}

	best := domain.RubricVersion{}
	found := false
	for _, v := range f.versions {
		if v.EffectiveMonth <= month && (!found || v.EffectiveMonth > best.EffectiveMonth) {
			best = v
			found = true
		}
	}
	return best, found, nil
}

func (f *fakeVersionRepo) FindAll(ctx context.Context) ([]domain.RubricVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.versions, nil
}

type fakeCache struct {
	entries map[string]Resolved
	getErr  error
}

func (f *fakeCache) GetRubric(ctx context.Context, month string) (Resolved, bool, error) {
	if f.getErr != nil {
		return Resolved{}, false, f.getErr
	}
	r, ok := f.entries[month]
	return r, ok, nil
}

func (f *fakeCache) SetRubric(ctx context.Context, month string, resolved Resolved) error {
	if f.entries == nil {
		f.entries = make(map[string]Resolved)
	}
	f.entries[month] = resolved
	return nil
}

func validRubric() domain.Rubric {
	return DefaultRubric()
}

func TestGetRubricForMonth_PicksLatestEffective(t *testing.T) {
	repo := &fakeVersionRepo{versions: []domain.RubricVersion{
		{Version: "2025.01", EffectiveMonth: "2025-01", Rubric: validRubric()},
		{Version: "2025.06", EffectiveMonth: "2025-06", Rubric: validRubric()},
	}}
	svc := NewRubricService(repo, nil, validator.New())

	version, _, err := svc.GetRubricForMonth(context.Background(), "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025.01", version)

	version, _, err = svc.GetRubricForMonth(context.Background(), "2025-07")
	require.NoError(t, err)
	assert.Equal(t, "2025.06", version)

	// the month a version becomes effective already uses it
	version, _, err = svc.GetRubricForMonth(context.Background(), "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "2025.06", version)
}

func TestGetRubricForMonth_FallsBackToDefault(t *testing.T) {
	repo := &fakeVersionRepo{versions: []domain.RubricVersion{
		{Version: "2025.01", EffectiveMonth: "2025-01", Rubric: validRubric()},
	}}
	svc := NewRubricService(repo, nil, validator.New())

	version, rub, err := svc.GetRubricForMonth(context.Background(), "2024-12")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRubricVersion, version)
	assert.Equal(t, DefaultRubric(), rub)
}

func TestGetRubricForMonth_StoreErrorIsFatal(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewRubricService(&fakeVersionRepo{err: storeErr}, nil, validator.New())

	_, _, err := svc.GetRubricForMonth(context.Background(), "2025-03")
	assert.ErrorIs(t, err, storeErr)
}

func TestGetRubricForMonth_RejectsBadMonth(t *testing.T) {
	svc := NewRubricService(&fakeVersionRepo{}, nil, validator.New())

	for _, month := range []string{"2025", "2025-13", "2025-1", "jan 2025", ""} {
		_, _, err := svc.GetRubricForMonth(context.Background(), month)
		assert.Error(t, err, "month %q", month)
	}
}

func TestGetRubricForMonth_Cache(t *testing.T) {
	repo := &fakeVersionRepo{versions: []domain.RubricVersion{
		{Version: "2025.01", EffectiveMonth: "2025-01", Rubric: validRubric()},
	}}
	cache := &fakeCache{}
	svc := NewRubricService(repo, cache, validator.New())

	version, _, err := svc.GetRubricForMonth(context.Background(), "2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025.01", version)
	assert.Contains(t, cache.entries, "2025-02")

	// a cached hit is served even if the store now fails
	repo.err = errors.New("store down")
	version, _, err = svc.GetRubricForMonth(context.Background(), "2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025.01", version)
}

func TestGetRubricForMonth_CacheErrorFallsThroughToStore(t *testing.T) {
	repo := &fakeVersionRepo{versions: []domain.RubricVersion{
		{Version: "2025.01", EffectiveMonth: "2025-01", Rubric: validRubric()},
	}}
	svc := NewRubricService(repo, &fakeCache{getErr: errors.New("redis down")}, validator.New())

	version, _, err := svc.GetRubricForMonth(context.Background(), "2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025.01", version)
}

func TestPublishVersion_SerializesContent(t *testing.T) {
	repo := &fakeVersionRepo{}
	svc := NewRubricService(repo, nil, validator.New())

	version := &domain.RubricVersion{
		Version:        "2025.07",
		EffectiveMonth: "2025-07",
		Rubric:         validRubric(),
	}
	require.NoError(t, svc.PublishVersion(context.Background(), version))
	require.Len(t, repo.created, 1)
	assert.NotEmpty(t, repo.created[0].RubricRaw)
}

func TestPublishVersion_Validation(t *testing.T) {
	badWeights := validRubric()
	badWeights.Weights = domain.Weights{Admin: 0.5, Supervisor: 0.5, Recruiter: 0.5}

	overlapping := validRubric()
	overlapping.AdminRules.Metrics = map[string][]domain.ErrorBucket{
		"mar_errors": {{Min: 1, Max: 5, Deduction: 5}, {Min: 3, Max: 9, Deduction: 10}},
	}

	inverted := validRubric()
	inverted.AdminRules.Metrics = map[string][]domain.ErrorBucket{
		"mar_errors": {{Min: 5, Max: 2, Deduction: 5}},
	}

	badTier := validRubric()
	badTier.RecruiterRules.EDAPenalty = map[string]float64{"1": 40, "3+": 60}

	negative := validRubric()
	negative.SupervisorRatingMap = map[string]float64{"Meets Expectations": -8}

	tests := []struct {
		name    string
		version domain.RubricVersion
	}{
		{"missing label", domain.RubricVersion{EffectiveMonth: "2025-07", Rubric: validRubric()}},
		{"bad effective month", domain.RubricVersion{Version: "v", EffectiveMonth: "07-2025", Rubric: validRubric()}},
		{"weights do not sum to 1", domain.RubricVersion{Version: "v", EffectiveMonth: "2025-07", Rubric: badWeights}},
		{"overlapping buckets", domain.RubricVersion{Version: "v", EffectiveMonth: "2025-07", Rubric: overlapping}},
		{"bucket min above max", domain.RubricVersion{Version: "v", EffectiveMonth: "2025-07", Rubric: inverted}},
		{"unknown tier key", domain.RubricVersion{Version: "v", EffectiveMonth: "2025-07", Rubric: badTier}},
		{"negative deduction", domain.RubricVersion{Version: "v", EffectiveMonth: "2025-07", Rubric: negative}},
	}

	repo := &fakeVersionRepo{}
	svc := NewRubricService(repo, nil, validator.New())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.version
			assert.Error(t, svc.PublishVersion(context.Background(), &v))
		})
	}
	assert.Empty(t, repo.created)
}
