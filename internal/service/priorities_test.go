package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/apperr"
	"github.com/mtran/wellness-backend/internal/model"
	"github.com/mtran/wellness-backend/internal/store"
	"github.com/mtran/wellness-backend/tests/testutil"
)

func newPrioritiesService(t *testing.T) *PrioritiesService {
	t.Helper()
	return NewPrioritiesService(testutil.NewTestStore(t))
}

func seedUser(t *testing.T, svc *PrioritiesService) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	if _, err := svc.Create(context.Background(), model.Priorities{ID: userID}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return userID
}

func TestGetPrioritiesMissingUser(t *testing.T) {
	svc := newPrioritiesService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if !apperr.IsNotFound(err) {
		t.Errorf("Get() error = %v, want not found", err)
	}
	// The store sentinel stays in the chain for callers that match on it.
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() error = %v, want wrapped store.ErrNotFound", err)
	}
}

func TestCreatePrioritiesConflict(t *testing.T) {
	svc := newPrioritiesService(t)
	userID := seedUser(t, svc)

	_, err := svc.Create(context.Background(), model.Priorities{ID: userID})
	if !apperr.IsConflict(err) {
		t.Errorf("second Create() error = %v, want conflict", err)
	}
}

func TestCreatePrioritiesRejectsBadImportance(t *testing.T) {
	svc := newPrioritiesService(t)

	_, err := svc.Create(context.Background(), model.Priorities{
		ID:               uuid.New(),
		PillarImportance: map[model.Pillar]float64{model.PillarHealth: 0.4},
	})
	if !apperr.IsValidation(err) {
		t.Errorf("Create() error = %v, want validation", err)
	}
}

func TestUpdatePriorities(t *testing.T) {
	svc := newPrioritiesService(t)
	ctx := context.Background()
	userID := seedUser(t, svc)

	goals := "Run a 10k"
	p, err := svc.Update(ctx, userID, model.PrioritiesUpdate{
		HealthGoals: &goals,
		PillarImportance: map[model.Pillar]float64{
			model.PillarHealth: 0.6,
			model.PillarWork:   0.4,
		},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.HealthGoals != goals {
		t.Errorf("HealthGoals = %q, want %q", p.HealthGoals, goals)
	}
	if p.PillarImportance[model.PillarHealth] != 0.6 {
		t.Errorf("PillarImportance = %v", p.PillarImportance)
	}

	// Invalid weights are rejected and nothing is written.
	_, err = svc.Update(ctx, userID, model.PrioritiesUpdate{
		PillarImportance: map[model.Pillar]float64{model.PillarHealth: 2.0},
	})
	if !apperr.IsValidation(err) {
		t.Errorf("Update() with bad weights = %v, want validation", err)
	}
	p, _ = svc.Get(ctx, userID)
	if p.PillarImportance[model.PillarHealth] != 0.6 {
		t.Errorf("PillarImportance after failed update = %v", p.PillarImportance)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	svc := newPrioritiesService(t)
	userID := seedUser(t, svc)

	p, err := svc.CompleteOnboarding(context.Background(), userID)
	if err != nil {
		t.Fatalf("CompleteOnboarding() error: %v", err)
	}
	if p.OnboardingCompletedAt == nil {
		t.Error("OnboardingCompletedAt is nil after completion")
	}
}

func TestAddActivity(t *testing.T) {
	svc := newPrioritiesService(t)
	ctx := context.Background()
	userID := seedUser(t, svc)

	a, err := svc.AddActivity(ctx, userID, "health", "Walk", "morning walk", "distance", "steps", 10000, "daily")
	if err != nil {
		t.Fatalf("AddActivity() error: %v", err)
	}
	if a.Configuration.Complete != 0 {
		t.Errorf("new activity complete = %g, want 0", a.Configuration.Complete)
	}

	// Duplicate name in the same pillar conflicts.
	_, err = svc.AddActivity(ctx, userID, "health", "Walk", "", "distance", "km", 5, "daily")
	if !apperr.IsConflict(err) {
		t.Errorf("duplicate AddActivity() = %v, want conflict", err)
	}

	// The same name in a different pillar is fine.
	if _, err := svc.AddActivity(ctx, userID, "growth", "Walk", "walking meditation", "time", "minutes", 20, "daily"); err != nil {
		t.Errorf("cross-pillar AddActivity() error: %v", err)
	}

	// Invalid unit/dimension pair is rejected.
	_, err = svc.AddActivity(ctx, userID, "health", "Hydrate", "", "volume", "steps", 2, "daily")
	if !apperr.IsValidation(err) {
		t.Errorf("AddActivity() with bad unit = %v, want validation", err)
	}
}

func TestUpdateActivity(t *testing.T) {
	svc := newPrioritiesService(t)
	ctx := context.Background()
	userID := seedUser(t, svc)
	if _, err := svc.AddActivity(ctx, userID, "health", "Walk", "", "distance", "steps", 10000, "daily"); err != nil {
		t.Fatalf("AddActivity() error: %v", err)
	}

	quota := 12000.0
	a, err := svc.UpdateActivity(ctx, userID, "health", "Walk", model.ActivityUpdate{QuotaValue: &quota})
	if err != nil {
		t.Fatalf("UpdateActivity() error: %v", err)
	}
	if a.Configuration.Quota.Value != 12000 {
		t.Errorf("quota = %g, want 12000", a.Configuration.Quota.Value)
	}

	// A dimension change without a matching unit leaves an inconsistent
	// pair and must fail.
	d := model.DimensionTime
	_, err = svc.UpdateActivity(ctx, userID, "health", "Walk", model.ActivityUpdate{Dimension: &d})
	if !apperr.IsValidation(err) {
		t.Errorf("UpdateActivity() with stale unit = %v, want validation", err)
	}

	_, err = svc.UpdateActivity(ctx, userID, "health", "Missing", model.ActivityUpdate{QuotaValue: &quota})
	if !apperr.IsNotFound(err) {
		t.Errorf("UpdateActivity() for missing activity = %v, want not found", err)
	}
}

func TestRemoveActivity(t *testing.T) {
	svc := newPrioritiesService(t)
	ctx := context.Background()
	userID := seedUser(t, svc)
	if _, err := svc.AddActivity(ctx, userID, "work", "Standup", "", "count", "times", 1, "daily"); err != nil {
		t.Fatalf("AddActivity() error: %v", err)
	}

	if err := svc.RemoveActivity(ctx, userID, "work", "Standup"); err != nil {
		t.Fatalf("RemoveActivity() error: %v", err)
	}
	activities, err := svc.ActivitiesForPillar(ctx, userID, "work")
	if err != nil {
		t.Fatalf("ActivitiesForPillar() error: %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("activities after removal = %+v", activities)
	}

	if err := svc.RemoveActivity(ctx, userID, "work", "Standup"); !apperr.IsNotFound(err) {
		t.Errorf("second RemoveActivity() = %v, want not found", err)
	}
}

func TestBulkAddActivities(t *testing.T) {
	svc := newPrioritiesService(t)
	ctx := context.Background()
	userID := seedUser(t, svc)
	if _, err := svc.AddActivity(ctx, userID, "health", "Walk", "", "distance", "steps", 10000, "daily"); err != nil {
		t.Fatalf("AddActivity() error: %v", err)
	}

	result, err := svc.BulkAddActivities(ctx, userID, []ActivityInput{
		{Pillar: "health", Name: "Walk", Dimension: "distance", Unit: "steps", QuotaValue: 10000, ResetFrequency: "daily"},
		{Pillar: "health", Name: "Hydrate", Dimension: "volume", Unit: "liters", QuotaValue: 2, ResetFrequency: "daily"},
		{Pillar: "growth", Name: "Read", Dimension: "count", Unit: "pages", QuotaValue: 20, ResetFrequency: "daily"},
		{Pillar: "growth", Name: "Bad", Dimension: "count", Unit: "liters", QuotaValue: 1, ResetFrequency: "daily"},
	})
	if err != nil {
		t.Fatalf("BulkAddActivities() error: %v", err)
	}

	if result.AddedCount != 2 || result.SkippedCount != 2 {
		t.Errorf("result = added %d skipped %d, want 2/2", result.AddedCount, result.SkippedCount)
	}
	if len(result.Errors) != 2 {
		t.Errorf("errors = %v", result.Errors)
	}

	// The valid entries landed despite the skips.
	all, err := svc.AllActivities(ctx, userID)
	if err != nil {
		t.Fatalf("AllActivities() error: %v", err)
	}
	if len(all[model.PillarHealth]) != 2 || len(all[model.PillarGrowth]) != 1 {
		t.Errorf("health = %d, growth = %d; want 2, 1",
			len(all[model.PillarHealth]), len(all[model.PillarGrowth]))
	}
}
