// Package catalog holds the static reference data consumed by the core:
// curated activity templates and the dimension→unit table. It is loaded
// once as in-process constants; nothing here is user-editable.
package catalog

import (
	"strings"

	"github.com/mtran/wellness-backend/internal/apperr"
	"github.com/mtran/wellness-backend/internal/model"
)

// Template is a suggested activity a user can adopt into a pillar.
type Template struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Pillars     []model.Pillar `json:"pillars"`
}

// DimensionOptions pairs a dimension with its allowed units.
type DimensionOptions struct {
	Dimension model.Dimension `json:"dimension"`
	Units     []string        `json:"units"`
}

var templates = []Template{
	// Health
	{Name: "Walking", Description: "Daily walking for physical health", Pillars: []model.Pillar{model.PillarHealth}},
	{Name: "Running", Description: "Cardiovascular exercise", Pillars: []model.Pillar{model.PillarHealth}},
	{Name: "Gym Workout", Description: "Strength and fitness training", Pillars: []model.Pillar{model.PillarHealth}},
	{Name: "Yoga", Description: "Physical and mental wellness", Pillars: []model.Pillar{model.PillarHealth, model.PillarGrowth}},
	{Name: "Cycling", Description: "Low-impact cardio exercise", Pillars: []model.Pillar{model.PillarHealth}},
	{Name: "Swimming", Description: "Full-body workout", Pillars: []model.Pillar{model.PillarHealth}},
	{Name: "Water Intake", Description: "Daily hydration tracking", Pillars: []model.Pillar{model.PillarHealth}},
	{Name: "Sleep", Description: "Quality sleep tracking", Pillars: []model.Pillar{model.PillarHealth}},

	// Work
	{Name: "Upskilling", Description: "Learning new professional skills", Pillars: []model.Pillar{model.PillarWork, model.PillarGrowth}},
	{Name: "Deep Work Sessions", Description: "Focused, uninterrupted work", Pillars: []model.Pillar{model.PillarWork}},
	{Name: "Professional Networking", Description: "Building professional relationships", Pillars: []model.Pillar{model.PillarWork, model.PillarRelationships}},
	{Name: "Productive Meetings", Description: "Effective collaboration sessions", Pillars: []model.Pillar{model.PillarWork}},
	{Name: "Side Project", Description: "Personal project development", Pillars: []model.Pillar{model.PillarWork, model.PillarGrowth}},

	// Growth
	{Name: "Meditation", Description: "Mindfulness and mental clarity", Pillars: []model.Pillar{model.PillarGrowth}},
	{Name: "Reading", Description: "Personal development through books", Pillars: []model.Pillar{model.PillarGrowth}},
	{Name: "Journaling", Description: "Self-reflection and writing", Pillars: []model.Pillar{model.PillarGrowth}},
	{Name: "Language Learning", Description: "Learning a new language", Pillars: []model.Pillar{model.PillarGrowth}},
	{Name: "Creative Hobby", Description: "Artistic or creative pursuits", Pillars: []model.Pillar{model.PillarGrowth}},
	{Name: "Podcasts/Audiobooks", Description: "Learning through audio content", Pillars: []model.Pillar{model.PillarGrowth}},

	// Relationships
	{Name: "Social Gatherings", Description: "Meeting with friends and family", Pillars: []model.Pillar{model.PillarRelationships}},
	{Name: "Quality Family Time", Description: "Dedicated time with family", Pillars: []model.Pillar{model.PillarRelationships}},
	{Name: "Video/Phone Calls", Description: "Stay connected remotely", Pillars: []model.Pillar{model.PillarRelationships}},
	{Name: "Date Night", Description: "Quality time with partner", Pillars: []model.Pillar{model.PillarRelationships}},
	{Name: "Community Volunteering", Description: "Giving back to community", Pillars: []model.Pillar{model.PillarRelationships}},
	{Name: "Check-in Messages", Description: "Reaching out to loved ones", Pillars: []model.Pillar{model.PillarRelationships}},
	{Name: "Mentoring", Description: "Guiding and supporting others", Pillars: []model.Pillar{model.PillarRelationships, model.PillarGrowth}},
}

// Templates returns every template grouped by pillar. Templates that span
// multiple pillars appear under each of them.
func Templates() map[model.Pillar][]Template {
	grouped := make(map[model.Pillar][]Template, len(model.Pillars))
	for _, p := range model.Pillars {
		grouped[p] = []Template{}
	}
	for _, t := range templates {
		for _, p := range t.Pillars {
			grouped[p] = append(grouped[p], t)
		}
	}
	return grouped
}

// TemplatesByPillar returns templates associated with one pillar.
func TemplatesByPillar(pillar string) ([]Template, error) {
	p, err := model.ParsePillar(pillar)
	if err != nil {
		return nil, err
	}

	var out []Template
	for _, t := range templates {
		for _, tp := range t.Pillars {
			if tp == p {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

// TemplateByName finds a template by case-insensitive name.
func TemplateByName(name string) (Template, error) {
	for _, t := range templates {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Template{}, apperr.NotFoundf("activity template %q not found", name)
}

// UnitsForDimension returns the allowed units for a dimension string.
func UnitsForDimension(dimension string) ([]string, error) {
	d, err := model.ParseDimension(dimension)
	if err != nil {
		return nil, apperr.NotFoundf("dimension not found: %q", dimension)
	}
	return model.UnitsForDimension(d)
}

// AllDimensionOptions lists every dimension with its unit set.
func AllDimensionOptions() []DimensionOptions {
	out := make([]DimensionOptions, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		units, _ := model.UnitsForDimension(d)
		out = append(out, DimensionOptions{Dimension: d, Units: units})
	}
	return out
}
