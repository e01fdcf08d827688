package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/apperr"
	"github.com/mtran/wellness-backend/internal/model"
	"github.com/mtran/wellness-backend/internal/store"
)

// PrioritiesService manages the durable per-user activity catalog. All
// list mutations follow a read-modify-write cycle against the whole
// record, matching the single-writer-per-user access pattern.
type PrioritiesService struct {
	store store.Store
}

func NewPrioritiesService(s store.Store) *PrioritiesService {
	return &PrioritiesService{store: s}
}

// Create inserts a new priorities record for a user. At most one record
// exists per user.
func (s *PrioritiesService) Create(ctx context.Context, p model.Priorities) (*model.Priorities, error) {
	if p.ID == uuid.Nil {
		return nil, apperr.Validationf("user id must not be empty")
	}
	if err := model.ValidatePillarImportance(p.PillarImportance); err != nil {
		return nil, err
	}

	exists, err := s.store.PrioritiesExist(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("checking priorities for %s: %w", p.ID, err)
	}
	if exists {
		return nil, apperr.Conflictf("priorities already exist for user %s", p.ID)
	}

	p.LastUpdatedAt = time.Now().UTC()
	if err := s.store.CreatePriorities(ctx, p); err != nil {
		return nil, fmt.Errorf("creating priorities for %s: %w", p.ID, err)
	}
	return &p, nil
}

// Get retrieves a user's priorities record.
func (s *PrioritiesService) Get(ctx context.Context, userID uuid.UUID) (*model.Priorities, error) {
	p, err := s.store.GetPriorities(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Wrap(apperr.KindNotFound, err, fmt.Sprintf("no priorities found for user %s", userID))
		}
		return nil, fmt.Errorf("getting priorities for %s: %w", userID, err)
	}
	return p, nil
}

// Update applies a partial update to the profile and preference fields.
// Pillar importance, when present, must be a complete valid weighting.
func (s *PrioritiesService) Update(ctx context.Context, userID uuid.UUID, u model.PrioritiesUpdate) (*model.Priorities, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.PillarImportance != nil {
		if err := model.ValidatePillarImportance(u.PillarImportance); err != nil {
			return nil, err
		}
		p.PillarImportance = u.PillarImportance
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&p.DisplayName, u.DisplayName)
	applyString(&p.AgeGroup, u.AgeGroup)
	applyString(&p.GenderIdentity, u.GenderIdentity)
	applyString(&p.PreferredPronouns, u.PreferredPronouns)
	applyString(&p.HealthGoals, u.HealthGoals)
	applyString(&p.HealthBaseline, u.HealthBaseline)
	applyString(&p.WorkGoals, u.WorkGoals)
	applyString(&p.WorkBaseline, u.WorkBaseline)
	applyString(&p.GrowthGoals, u.GrowthGoals)
	applyString(&p.GrowthBaseline, u.GrowthBaseline)
	applyString(&p.RelationshipsGoals, u.RelationshipsGoals)
	applyString(&p.RelationshipsBaseline, u.RelationshipsBaseline)

	if u.CheckinSchedule != nil {
		p.CheckinSchedule = u.CheckinSchedule
	}
	if u.PrivacySettings != nil {
		p.PrivacySettings = u.PrivacySettings
	}
	if u.NotificationPreferences != nil {
		p.NotificationPreferences = u.NotificationPreferences
	}

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a user's priorities record.
func (s *PrioritiesService) Delete(ctx context.Context, userID uuid.UUID) error {
	err := s.store.DeletePriorities(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFoundf("no priorities found for user %s", userID)
	}
	return err
}

// Exists reports whether a user has a priorities record.
func (s *PrioritiesService) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.store.PrioritiesExist(ctx, userID)
}

// CompleteOnboarding marks onboarding done. Calling it again refreshes
// the timestamp.
func (s *PrioritiesService) CompleteOnboarding(ctx context.Context, userID uuid.UUID) (*model.Priorities, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.OnboardingCompletedAt = &now
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddActivity validates and appends an activity to a pillar's list.
// Names are unique within the list.
func (s *PrioritiesService) AddActivity(
	ctx context.Context,
	userID uuid.UUID,
	pillar string,
	name, description string,
	dimension string,
	unit string,
	quotaValue float64,
	resetFrequency string,
) (*model.Activity, error) {
	activity, err := model.BuildActivity(
		name, description,
		model.Pillar(pillar), model.Dimension(dimension),
		0, unit, quotaValue, model.ResetFrequency(resetFrequency),
	)
	if err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.HasActivity(activity.Pillar, activity.Name) {
		return nil, apperr.Conflictf(
			"activity %q already exists in %s priorities", activity.Name, activity.Pillar)
	}

	list := p.ActivitiesFor(activity.Pillar)
	*list = append(*list, activity)

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity applies a partial update to a named activity. The
// merged configuration is revalidated, so a dimension change must come
// with a unit valid for it.
func (s *PrioritiesService) UpdateActivity(
	ctx context.Context,
	userID uuid.UUID,
	pillar string,
	name string,
	u model.ActivityUpdate,
) (*model.Activity, error) {
	pl, err := model.ParsePillar(pillar)
	if err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := p.ActivitiesFor(pl)
	for i := range *list {
		if (*list)[i].Name != name {
			continue
		}
		updated, err := u.Apply((*list)[i])
		if err != nil {
			return nil, err
		}
		(*list)[i] = updated

		if err := s.save(ctx, p); err != nil {
			return nil, err
		}
		return &updated, nil
	}

	return nil, apperr.NotFoundf("activity %q not found in %s priorities", name, pl)
}

// UpdateActivityProgress sets the durable progress counter for a named
// activity in the catalog.
func (s *PrioritiesService) UpdateActivityProgress(
	ctx context.Context,
	userID uuid.UUID,
	pillar string,
	name string,
	complete float64,
) (*model.Activity, error) {
	return s.UpdateActivity(ctx, userID, pillar, name, model.ActivityUpdate{Complete: &complete})
}

// RemoveActivity deletes a named activity from a pillar's list.
func (s *PrioritiesService) RemoveActivity(ctx context.Context, userID uuid.UUID, pillar, name string) error {
	pl, err := model.ParsePillar(pillar)
	if err != nil {
		return err
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	list := p.ActivitiesFor(pl)
	kept := (*list)[:0]
	found := false
	for _, a := range *list {
		if a.Name == name {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return apperr.NotFoundf("activity %q not found in %s priorities", name, pl)
	}
	*list = kept

	return s.save(ctx, p)
}

// ActivitiesForPillar returns one pillar's activity list.
func (s *PrioritiesService) ActivitiesForPillar(ctx context.Context, userID uuid.UUID, pillar string) ([]model.Activity, error) {
	pl, err := model.ParsePillar(pillar)
	if err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return *p.ActivitiesFor(pl), nil
}

// AllActivities returns every pillar's activity list.
func (s *PrioritiesService) AllActivities(ctx context.Context, userID uuid.UUID) (map[model.Pillar][]model.Activity, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.AllActivities(), nil
}

// ActivityInput is one item of a bulk catalog add.
type ActivityInput struct {
	Pillar         string  `json:"pillar"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Dimension      string  `json:"dimension"`
	Unit           string  `json:"unit"`
	QuotaValue     float64 `json:"quota_value"`
	ResetFrequency string  `json:"reset_frequency"`
}

// BulkAddActivities adds many activities at once. Duplicates and
// invalid entries are skipped and reported; valid entries still land.
func (s *PrioritiesService) BulkAddActivities(ctx context.Context, userID uuid.UUID, inputs []ActivityInput) (*model.BulkAddResult, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := model.BulkAddResult{}
	for _, in := range inputs {
		activity, err := model.BuildActivity(
			in.Name, in.Description,
			model.Pillar(in.Pillar), model.Dimension(in.Dimension),
			0, in.Unit, in.QuotaValue, model.ResetFrequency(in.ResetFrequency),
		)
		if err != nil {
			result.SkippedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", in.Name, err))
			continue
		}
		if p.HasActivity(activity.Pillar, activity.Name) {
			result.SkippedCount++
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: already exists in %s priorities", activity.Name, activity.Pillar))
			continue
		}

		list := p.ActivitiesFor(activity.Pillar)
		*list = append(*list, activity)
		result.AddedCount++
	}

	if result.AddedCount > 0 {
		if err := s.save(ctx, p); err != nil {
			return nil, err
		}
	}

	result.Message = fmt.Sprintf("Added %d activities, skipped %d", result.AddedCount, result.SkippedCount)
	return &result, nil
}

func (s *PrioritiesService) save(ctx context.Context, p *model.Priorities) error {
	p.LastUpdatedAt = time.Now().UTC()
	if err := s.store.SavePriorities(ctx, *p); err != nil {
		return fmt.Errorf("saving priorities for %s: %w", p.ID, err)
	}
	return nil
}
