package model

import (
	"strings"

	"github.com/mtran/wellness-backend/internal/apperr"
)

// Dimension is the measurement type of an activity.
type Dimension string

const (
	DimensionTime     Dimension = "time"
	DimensionDistance Dimension = "distance"
	DimensionWeight   Dimension = "weight"
	DimensionVolume   Dimension = "volume"
	DimensionCount    Dimension = "count"
	DimensionRating   Dimension = "rating"
	DimensionBoolean  Dimension = "boolean"
	DimensionText     Dimension = "text"
)

// Dimensions lists all dimensions in their canonical order.
var Dimensions = []Dimension{
	DimensionTime, DimensionDistance, DimensionWeight, DimensionVolume,
	DimensionCount, DimensionRating, DimensionBoolean, DimensionText,
}

// dimensionUnits is the fixed table of allowed units per dimension.
var dimensionUnits = map[Dimension][]string{
	DimensionTime:     {"minutes", "hours"},
	DimensionDistance: {"steps", "km", "miles", "meters"},
	DimensionWeight:   {"kg", "lbs", "grams"},
	DimensionVolume:   {"liters", "ml", "gallons"},
	DimensionCount:    {"count", "times", "repetitions", "pages", "books", "people", "messages"},
	DimensionRating:   {"rating", "stars"},
	DimensionBoolean:  {"completed"},
	DimensionText:     {"text"},
}

// ParseDimension converts a case-insensitive string into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(s))
	if _, ok := dimensionUnits[d]; !ok {
		return "", apperr.Validationf("invalid dimension: %q", s)
	}
	return d, nil
}

// UnitsForDimension returns the allowed units for a dimension.
func UnitsForDimension(d Dimension) ([]string, error) {
	units, ok := dimensionUnits[d]
	if !ok {
		return nil, apperr.NotFoundf("dimension not found: %q", d)
	}
	out := make([]string, len(units))
	copy(out, units)
	return out, nil
}

// ValidateUnit checks that unit belongs to the allowed set for dimension.
func ValidateUnit(d Dimension, unit string) error {
	units, ok := dimensionUnits[d]
	if !ok {
		return apperr.Validationf("invalid dimension: %q", d)
	}
	for _, u := range units {
		if u == unit {
			return nil
		}
	}
	return apperr.Validationf(
		"unit %q is not valid for dimension %q, valid units: %s",
		unit, d, strings.Join(units, ", "))
}

// ResetFrequency is the cadence at which a quota resets.
type ResetFrequency string

const (
	FrequencyHourly  ResetFrequency = "hourly"
	FrequencyDaily   ResetFrequency = "daily"
	FrequencyWeekly  ResetFrequency = "weekly"
	FrequencyMonthly ResetFrequency = "monthly"
	FrequencyYearly  ResetFrequency = "yearly"
)

// ParseResetFrequency converts a case-insensitive string into a ResetFrequency.
func ParseResetFrequency(s string) (ResetFrequency, error) {
	switch ResetFrequency(strings.ToLower(s)) {
	case FrequencyHourly:
		return FrequencyHourly, nil
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyYearly:
		return FrequencyYearly, nil
	}
	return "", apperr.Validationf(
		"invalid reset frequency: %q, must be one of: hourly, daily, weekly, monthly, yearly", s)
}
