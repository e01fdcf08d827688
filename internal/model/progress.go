package model

// ProgressSummary buckets a day's pillar activities by completion state.
type ProgressSummary struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	NotStarted     int     `json:"not_started"`
	CompletionRate float64 `json:"completion_rate"`
}

// ActivityProgress is one activity's progress line in a category report.
type ActivityProgress struct {
	Name       string  `json:"name"`
	Complete   float64 `json:"complete"`
	Quota      float64 `json:"quota"`
	Percentage float64 `json:"percentage"`
}

// CategoryProgress summarizes one category's activity and coping lists.
type CategoryProgress struct {
	Category            string             `json:"category"`
	Activities          []ActivityProgress `json:"activities"`
	TotalActivities     int                `json:"total_activities"`
	CompletedActivities int                `json:"completed_activities"`
	CompletionRate      float64            `json:"completion_rate"`
}

// StreakResult reports consecutive qualifying days for one activity.
type StreakResult struct {
	ActivityName  string `json:"activity_name"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	DaysChecked   int    `json:"days_checked"`
}

// ActivityValidation reports whether an activity can be tracked for a day.
type ActivityValidation struct {
	IsValid          bool     `json:"is_valid"`
	ActivityName     string   `json:"activity_name"`
	Exists           bool     `json:"exists"`
	HasQuota         bool     `json:"has_quota"`
	CanTrackProgress bool     `json:"can_track_progress"`
	Messages         []string `json:"messages"`
}

// CompleteUpdate is one item of a bulk progress update.
type CompleteUpdate struct {
	Name     string  `json:"name"`
	Complete float64 `json:"complete"`
	Category string  `json:"category,omitempty"`
}

// BulkUpdateResult reports per-item outcomes of a bulk progress update.
// Partial success is a designed outcome: earlier successes persist even
// when later items fail.
type BulkUpdateResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}

// BulkAddResult reports the outcome of a bulk catalog add. Duplicates
// and invalid entries are skipped, not fatal.
type BulkAddResult struct {
	AddedCount   int      `json:"added_count"`
	SkippedCount int      `json:"skipped_count"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}
