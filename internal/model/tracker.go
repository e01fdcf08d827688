package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/apperr"
)

// TrackerField identifies one of the eight embedded activity lists on a
// day's tracker.
type TrackerField string

const (
	FieldHealthActivity       TrackerField = "health_activity"
	FieldWorkActivity         TrackerField = "work_activity"
	FieldGrowthActivity       TrackerField = "growth_activity"
	FieldRelationshipActivity TrackerField = "relationship_activity"
	FieldHealthCoping         TrackerField = "health_coping"
	FieldProductivityCoping   TrackerField = "productivity_coping"
	FieldMindfulnessCoping    TrackerField = "mindfulness_coping"
	FieldRelationshipCoping   TrackerField = "relationship_coping"
)

// TrackerFields is the fixed scan order for activity lookups: the four
// activity lists first, then the four coping lists, each in
// health→work→growth→relationship order.
var TrackerFields = []TrackerField{
	FieldHealthActivity,
	FieldWorkActivity,
	FieldGrowthActivity,
	FieldRelationshipActivity,
	FieldHealthCoping,
	FieldProductivityCoping,
	FieldMindfulnessCoping,
	FieldRelationshipCoping,
}

// ActivityFields are the four pillar activity lists, with coping lists
// excluded. Aggregation totals only scan these.
var ActivityFields = []TrackerField{
	FieldHealthActivity,
	FieldWorkActivity,
	FieldGrowthActivity,
	FieldRelationshipActivity,
}

// categoryFields maps a tracker category to the pair of lists it covers.
// Both singular and plural relationship spellings are accepted.
var categoryFields = map[string][]TrackerField{
	"health":        {FieldHealthActivity, FieldHealthCoping},
	"work":          {FieldWorkActivity, FieldProductivityCoping},
	"growth":        {FieldGrowthActivity, FieldMindfulnessCoping},
	"relationship":  {FieldRelationshipActivity, FieldRelationshipCoping},
	"relationships": {FieldRelationshipActivity, FieldRelationshipCoping},
}

// FieldsForCategory narrows the scan scope to a category's activity and
// coping lists. An empty category selects all eight lists in scan order.
func FieldsForCategory(category string) ([]TrackerField, error) {
	if category == "" {
		return TrackerFields, nil
	}
	fields, ok := categoryFields[strings.ToLower(category)]
	if !ok {
		return nil, apperr.Validationf(
			"invalid category: %q, must be one of: health, work, growth, relationship(s)", category)
	}
	return fields, nil
}

// ActivityTracker is the per-day snapshot of activities with live
// progress counters. It shares its daily log's ID.
type ActivityTracker struct {
	ID uuid.UUID `json:"id"`

	HealthActivity       []Activity `json:"health_activity"`
	WorkActivity         []Activity `json:"work_activity"`
	GrowthActivity       []Activity `json:"growth_activity"`
	RelationshipActivity []Activity `json:"relationship_activity"`
	HealthCoping         []Activity `json:"health_coping"`
	ProductivityCoping   []Activity `json:"productivity_coping"`
	MindfulnessCoping    []Activity `json:"mindfulness_coping"`
	RelationshipCoping   []Activity `json:"relationship_coping"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns a pointer to the named list for in-place mutation.
func (t *ActivityTracker) List(field TrackerField) *[]Activity {
	switch field {
	case FieldHealthActivity:
		return &t.HealthActivity
	case FieldWorkActivity:
		return &t.WorkActivity
	case FieldGrowthActivity:
		return &t.GrowthActivity
	case FieldRelationshipActivity:
		return &t.RelationshipActivity
	case FieldHealthCoping:
		return &t.HealthCoping
	case FieldProductivityCoping:
		return &t.ProductivityCoping
	case FieldMindfulnessCoping:
		return &t.MindfulnessCoping
	case FieldRelationshipCoping:
		return &t.RelationshipCoping
	}
	return nil
}

// HasActivities reports whether any of the four pillar activity lists is
// populated. A tracker with only coping entries still counts as empty
// for initialization purposes.
func (t *ActivityTracker) HasActivities() bool {
	return len(t.HealthActivity) > 0 ||
		len(t.WorkActivity) > 0 ||
		len(t.GrowthActivity) > 0 ||
		len(t.RelationshipActivity) > 0
}

// Find scans the given lists in order and returns the first activity
// matching name, along with the field that holds it.
func (t *ActivityTracker) Find(name string, fields []TrackerField) (*Activity, TrackerField) {
	for _, field := range fields {
		list := t.List(field)
		for i := range *list {
			if (*list)[i].Name == name {
				return &(*list)[i], field
			}
		}
	}
	return nil, ""
}
