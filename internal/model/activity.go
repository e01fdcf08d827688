package model

import "github.com/mtran/wellness-backend/internal/apperr"

// QuotaConfig is the target an activity's progress is measured against.
type QuotaConfig struct {
	// Value is the target amount, always positive.
	Value float64 `json:"value"`

	// ResetFrequency is the cadence at which progress resets.
	ResetFrequency ResetFrequency `json:"reset_frequency"`
}

// ActivityConfiguration holds the measurement setup and live progress
// counter for an activity.
type ActivityConfiguration struct {
	Dimension Dimension   `json:"dimension"`
	Complete  float64     `json:"complete"`
	Unit      string      `json:"unit"`
	Quota     QuotaConfig `json:"quota"`
}

// Activity is a trackable habit or task. It is a value type: activities
// are embedded in priorities and tracker lists, never addressed on their
// own. Names are unique within one pillar's list.
type Activity struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Pillar        Pillar                `json:"pillar"`
	Configuration ActivityConfiguration `json:"configuration"`
}

// BuildActivity validates and constructs an Activity. It is the single
// chokepoint all activity-creation paths pass through, so unit/dimension
// consistency cannot be violated elsewhere.
func BuildActivity(
	name, description string,
	pillar Pillar,
	dimension Dimension,
	complete float64,
	unit string,
	quotaValue float64,
	resetFrequency ResetFrequency,
) (Activity, error) {
	if name == "" {
		return Activity{}, apperr.Validationf("activity name must not be empty")
	}
	pillar, err := ParsePillar(string(pillar))
	if err != nil {
		return Activity{}, err
	}
	resetFrequency, err = ParseResetFrequency(string(resetFrequency))
	if err != nil {
		return Activity{}, err
	}
	dimension, err = ParseDimension(string(dimension))
	if err != nil {
		return Activity{}, err
	}
	if err := ValidateUnit(dimension, unit); err != nil {
		return Activity{}, err
	}
	if complete < 0 {
		return Activity{}, apperr.Validationf(
			"progress value for %q must be non-negative, got %g", name, complete)
	}
	if quotaValue <= 0 {
		return Activity{}, apperr.Validationf(
			"quota value for %q must be positive, got %g", name, quotaValue)
	}

	return Activity{
		Name:        name,
		Description: description,
		Pillar:      pillar,
		Configuration: ActivityConfiguration{
			Dimension: dimension,
			Complete:  complete,
			Unit:      unit,
			Quota: QuotaConfig{
				Value:          quotaValue,
				ResetFrequency: resetFrequency,
			},
		},
	}, nil
}

// ActivityUpdate carries a partial update for an existing activity.
// Nil fields are left unchanged.
type ActivityUpdate struct {
	Description    *string
	Dimension      *Dimension
	Complete       *float64
	Unit           *string
	QuotaValue     *float64
	ResetFrequency *ResetFrequency
}

// Apply merges the update into a copy of the activity and revalidates
// the result. The merged dimension/unit pair must stay consistent even
// when only one of the two is changed.
func (u ActivityUpdate) Apply(a Activity) (Activity, error) {
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Dimension != nil {
		a.Configuration.Dimension = *u.Dimension
	}
	if u.Complete != nil {
		a.Configuration.Complete = *u.Complete
	}
	if u.Unit != nil {
		a.Configuration.Unit = *u.Unit
	}
	if u.QuotaValue != nil {
		a.Configuration.Quota.Value = *u.QuotaValue
	}
	if u.ResetFrequency != nil {
		a.Configuration.Quota.ResetFrequency = *u.ResetFrequency
	}

	return BuildActivity(
		a.Name,
		a.Description,
		a.Pillar,
		a.Configuration.Dimension,
		a.Configuration.Complete,
		a.Configuration.Unit,
		a.Configuration.Quota.Value,
		a.Configuration.Quota.ResetFrequency,
	)
}

// Snapshot returns a copy of the activity with progress reset to zero,
// used when seeding a day's tracker from the durable catalog.
func (a Activity) Snapshot() Activity {
	a.Configuration.Complete = 0
	return a
}

// MetGoal reports whether the activity qualifies for streak purposes:
// quota met, or any progress at all on a quota-less activity.
func (a Activity) MetGoal() bool {
	quota := a.Configuration.Quota.Value
	complete := a.Configuration.Complete
	if quota > 0 {
		return complete >= quota
	}
	return complete > 0
}
