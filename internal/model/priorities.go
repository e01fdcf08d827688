package model

import (
	"time"

	"github.com/google/uuid"
)

// Priorities is the durable, user-curated catalog of activities per
// pillar, plus lightweight profile and preference data. Exactly one
// record exists per user; its ID is the user's ID.
type Priorities struct {
	ID uuid.UUID `json:"id"`

	DisplayName       string `json:"display_name,omitempty"`
	AgeGroup          string `json:"age_group,omitempty"`
	GenderIdentity    string `json:"gender_identity,omitempty"`
	PreferredPronouns string `json:"preferred_pronouns,omitempty"`

	// PillarImportance holds weights per pillar, summing to 1.0.
	PillarImportance map[Pillar]float64 `json:"pillar_importance,omitempty"`

	HealthGoals             string     `json:"health_goals,omitempty"`
	HealthBaseline          string     `json:"health_baseline,omitempty"`
	HealthActivities        []Activity `json:"health_activities"`
	WorkGoals               string     `json:"work_goals,omitempty"`
	WorkBaseline            string     `json:"work_baseline,omitempty"`
	WorkActivities          []Activity `json:"work_activities"`
	GrowthGoals             string     `json:"growth_goals,omitempty"`
	GrowthBaseline          string     `json:"growth_baseline,omitempty"`
	GrowthActivities        []Activity `json:"growth_activities"`
	RelationshipsGoals      string     `json:"relationships_goals,omitempty"`
	RelationshipsBaseline   string     `json:"relationships_baseline,omitempty"`
	RelationshipsActivities []Activity `json:"relationships_activities"`

	CheckinSchedule         map[string]any `json:"checkin_schedule,omitempty"`
	PrivacySettings         map[string]any `json:"privacy_settings,omitempty"`
	NotificationPreferences map[string]any `json:"notification_preferences,omitempty"`

	OnboardingCompletedAt *time.Time `json:"onboarding_completed_at,omitempty"`
	LastUpdatedAt         time.Time  `json:"last_updated_at"`
}

// ActivitiesFor returns a pointer to the activity list for a pillar,
// so callers can mutate the list in place before writing back.
func (p *Priorities) ActivitiesFor(pillar Pillar) *[]Activity {
	switch pillar {
	case PillarHealth:
		return &p.HealthActivities
	case PillarWork:
		return &p.WorkActivities
	case PillarGrowth:
		return &p.GrowthActivities
	case PillarRelationships:
		return &p.RelationshipsActivities
	}
	return nil
}

// AllActivities returns a projection of every pillar's activity list.
func (p *Priorities) AllActivities() map[Pillar][]Activity {
	return map[Pillar][]Activity{
		PillarHealth:        p.HealthActivities,
		PillarWork:          p.WorkActivities,
		PillarGrowth:        p.GrowthActivities,
		PillarRelationships: p.RelationshipsActivities,
	}
}

// HasActivity reports whether an activity with the given name exists in
// the pillar's list. Names match case-sensitively.
func (p *Priorities) HasActivity(pillar Pillar, name string) bool {
	for _, a := range *p.ActivitiesFor(pillar) {
		if a.Name == name {
			return true
		}
	}
	return false
}

// PrioritiesUpdate carries a partial update of a priorities record.
// Nil fields are left unchanged.
type PrioritiesUpdate struct {
	DisplayName       *string
	AgeGroup          *string
	GenderIdentity    *string
	PreferredPronouns *string

	PillarImportance map[Pillar]float64

	HealthGoals           *string
	HealthBaseline        *string
	WorkGoals             *string
	WorkBaseline          *string
	GrowthGoals           *string
	GrowthBaseline        *string
	RelationshipsGoals    *string
	RelationshipsBaseline *string

	CheckinSchedule         map[string]any
	PrivacySettings         map[string]any
	NotificationPreferences map[string]any
}
