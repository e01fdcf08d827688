package model

import (
	"math"
	"strings"

	"github.com/mtran/wellness-backend/internal/apperr"
)

// Pillar is one of the four life domains used to categorize activities.
type Pillar string

const (
	PillarHealth        Pillar = "health"
	PillarWork          Pillar = "work"
	PillarGrowth        Pillar = "growth"
	PillarRelationships Pillar = "relationships"
)

// Pillars lists all pillars in their canonical order.
var Pillars = []Pillar{PillarHealth, PillarWork, PillarGrowth, PillarRelationships}

// ParsePillar converts a case-insensitive string into a Pillar.
func ParsePillar(s string) (Pillar, error) {
	switch Pillar(strings.ToLower(s)) {
	case PillarHealth:
		return PillarHealth, nil
	case PillarWork:
		return PillarWork, nil
	case PillarGrowth:
		return PillarGrowth, nil
	case PillarRelationships:
		return PillarRelationships, nil
	}
	return "", apperr.Validationf(
		"invalid pillar: %q, must be one of: health, work, growth, relationships", s)
}

// ValidatePillarImportance checks that importance weights cover only valid
// pillars and sum to 1.0 within a 0.01 tolerance.
func ValidatePillarImportance(weights map[Pillar]float64) error {
	if len(weights) == 0 {
		return nil
	}

	total := 0.0
	for pillar, weight := range weights {
		if _, err := ParsePillar(string(pillar)); err != nil {
			return apperr.Validationf("invalid pillar name %q in pillar importance", pillar)
		}
		total += weight
	}

	if math.Abs(total-1.0) > 0.01 {
		return apperr.Validationf("pillar importance values must sum to 1.0, got %.2f", total)
	}
	return nil
}
