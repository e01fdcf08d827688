package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/apperr"
)

// DateFormat is the calendar-date layout used to key daily logs.
const DateFormat = "2006-01-02"

// DailyLog is the per-user, per-date root document. Its four child
// records (Checkin, Journal, ChatbotLog, ActivityTracker) share its ID
// as their own primary key and are cascade-deleted with it.
type DailyLog struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	// Date is the calendar date in YYYY-MM-DD form.
	Date string `json:"date" db:"date"`

	// CurrentStatusSummary is a non-authoritative end-of-day snapshot,
	// regenerated on demand for display and AI priming.
	CurrentStatusSummary string `json:"current_status_summary,omitempty" db:"current_status_summary"`

	Frequency   map[string]int    `json:"frequency,omitempty" db:"-"`
	ActiveHours map[string]string `json:"active_hours,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CheckinField identifies one of the four check-in time series.
type CheckinField string

const (
	CheckinMood   CheckinField = "mood"
	CheckinStress CheckinField = "stress_level"
	CheckinEnergy CheckinField = "energy_level"
	CheckinSleep  CheckinField = "sleep"
)

// SleepEntry is the value recorded for a sleep check-in.
type SleepEntry struct {
	// Duration is hours slept.
	Duration float64 `json:"duration"`

	// Quality is one of: good, average, poor.
	Quality string `json:"quality"`
}

// Checkin holds the day's append-only check-in series, each keyed by an
// ISO-8601 timestamp string. Timestamps are unique within one field.
type Checkin struct {
	ID uuid.UUID `json:"id"`

	Mood        map[string]string     `json:"mood"`
	StressLevel map[string]string     `json:"stress_level"`
	EnergyLevel map[string]string     `json:"energy_level"`
	Sleep       map[string]SleepEntry `json:"sleep"`

	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// LatestCheckinValues is the most recent value per check-in field.
// Nil pointers mean the field has no entries for the day.
type LatestCheckinValues struct {
	Mood        *string     `json:"mood"`
	StressLevel *string     `json:"stress_level"`
	EnergyLevel *string     `json:"energy_level"`
	Sleep       *SleepEntry `json:"sleep"`
}

// Journal holds the day's journal entries keyed by ISO-8601 timestamp.
type Journal struct {
	ID uuid.UUID `json:"id"`

	Entries  map[string]JournalEntry `json:"journal"`
	Analysis map[string]any          `json:"analysis,omitempty"`

	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// ChatMessage is one turn of the day's chatbot conversation.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatbotLog holds the day's conversation as an ordered message list.
type ChatbotLog struct {
	ID uuid.UUID `json:"id"`

	Conversation []ChatMessage  `json:"conversation"`
	Analysis     map[string]any `json:"analysis,omitempty"`

	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// DailyLogDetail is the composed view of a daily log and its children.
type DailyLogDetail struct {
	DailyLog DailyLog        `json:"daily_log"`
	Checkin  Checkin         `json:"checkin"`
	Journal  Journal         `json:"journal"`
	Chatbot  ChatbotLog      `json:"chatbot"`
	Tracker  ActivityTracker `json:"activities"`
}

// DailyLogListItem is the compact per-day row returned by range queries.
type DailyLogListItem struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	Summary       string    `json:"summary,omitempty"`
	HasCheckin    bool      `json:"has_checkin"`
	ActivityCount int       `json:"activity_count"`
}

// validCheckinLabels defines the accepted labels per label-valued field.
var validCheckinLabels = map[CheckinField][]string{
	CheckinMood:   {"happy", "sad", "anxious", "angry", "neutral"},
	CheckinStress: {"low", "medium", "high"},
	CheckinEnergy: {"low", "medium", "high"},
}

// sleepQualities are the accepted sleep quality labels.
var sleepQualities = []string{"good", "average", "poor"}

// ValidateCheckinLabel checks a label against the accepted set for one
// of the label-valued check-in fields (mood, stress_level, energy_level).
func ValidateCheckinLabel(field CheckinField, label string) error {
	labels, ok := validCheckinLabels[field]
	if !ok {
		return apperr.Validationf("invalid check-in field: %q", field)
	}
	for _, l := range labels {
		if l == label {
			return nil
		}
	}
	return apperr.Validationf(
		"invalid %s value %q, must be one of: %s", field, label, strings.Join(labels, ", "))
}

// Validate checks a sleep entry's duration and quality label.
func (e SleepEntry) Validate() error {
	if e.Duration < 0 {
		return apperr.Validationf("sleep duration must be non-negative, got %g", e.Duration)
	}
	for _, q := range sleepQualities {
		if q == e.Quality {
			return nil
		}
	}
	return apperr.Validationf(
		"invalid sleep quality %q, must be one of: %s", e.Quality, strings.Join(sleepQualities, ", "))
}
