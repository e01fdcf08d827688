package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/apperr"
	"github.com/mtran/wellness-backend/internal/model"
	"github.com/mtran/wellness-backend/internal/store"
)

// DefaultStreakWindow is how many days back a streak query checks when
// the caller does not say.
const DefaultStreakWindow = 30

// ProgressService derives read-only statistics from tracker snapshots.
// It never mutates; day documents are reached through DailyLogService
// so absent days auto-materialize consistently.
type ProgressService struct {
	store  store.Store
	days   *DailyLogService
	window int
}

func NewProgressService(s store.Store, days *DailyLogService) *ProgressService {
	return &ProgressService{store: s, days: days, window: DefaultStreakWindow}
}

// SetStreakWindow overrides the fallback window for streak queries that
// do not name one. Non-positive values are ignored.
func (s *ProgressService) SetStreakWindow(days int) {
	if days > 0 {
		s.window = days
	}
}

// CompletionPercentage reports progress against quota, capped at 100.
// A zero quota always reads as 0 percent.
func CompletionPercentage(complete, quota float64) float64 {
	if quota == 0 {
		return 0
	}
	return math.Min(100, round2(complete/quota*100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ProgressSummary buckets the day's pillar activities by completion
// state. Coping lists are excluded from the totals.
func (s *ProgressService) ProgressSummary(ctx context.Context, userID uuid.UUID, date string) (*model.ProgressSummary, error) {
	tracker, err := s.days.trackerFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	summary := summarize(tracker, model.ActivityFields)
	return &summary, nil
}

func summarize(t *model.ActivityTracker, fields []model.TrackerField) model.ProgressSummary {
	var summary model.ProgressSummary
	for _, field := range fields {
		for _, a := range *t.List(field) {
			summary.Total++
			complete := a.Configuration.Complete
			quota := a.Configuration.Quota.Value
			switch {
			case complete == 0:
				summary.NotStarted++
			case quota > 0 && complete >= quota:
				summary.Completed++
			default:
				summary.InProgress++
			}
		}
	}
	if summary.Total > 0 {
		summary.CompletionRate = round2(float64(summary.Completed) / float64(summary.Total) * 100)
	}
	return summary
}

// CategoryProgress reports per-activity progress across one category's
// activity and coping lists.
func (s *ProgressService) CategoryProgress(ctx context.Context, userID uuid.UUID, date, category string) (*model.CategoryProgress, error) {
	if category == "" {
		return nil, apperr.Validationf("category must not be empty")
	}
	fields, err := model.FieldsForCategory(category)
	if err != nil {
		return nil, err
	}

	tracker, err := s.days.trackerFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	progress := model.CategoryProgress{
		Category:   category,
		Activities: []model.ActivityProgress{},
	}
	for _, field := range fields {
		for _, a := range *tracker.List(field) {
			complete := a.Configuration.Complete
			quota := a.Configuration.Quota.Value
			progress.Activities = append(progress.Activities, model.ActivityProgress{
				Name:       a.Name,
				Complete:   complete,
				Quota:      quota,
				Percentage: CompletionPercentage(complete, quota),
			})
			progress.TotalActivities++
			if a.MetGoal() && quota > 0 {
				progress.CompletedActivities++
			}
		}
	}
	if progress.TotalActivities > 0 {
		progress.CompletionRate = round2(
			float64(progress.CompletedActivities) / float64(progress.TotalActivities) * 100)
	}
	return &progress, nil
}

// ActivityStreak walks backward from today for daysToCheck days. A day
// qualifies when the activity meets its quota, or shows any progress
// when quota-less. A missing day, or a day without the activity, breaks
// the chain. The current streak counts consecutive qualifying days
// strictly ending at today: if today does not qualify it is 0.
func (s *ProgressService) ActivityStreak(
	ctx context.Context,
	userID uuid.UUID,
	activityName, category string,
	daysToCheck int,
) (*model.StreakResult, error) {
	if daysToCheck <= 0 {
		daysToCheck = s.window
	}
	fields, err := model.FieldsForCategory(category)
	if err != nil {
		return nil, err
	}

	today, err := time.Parse(model.DateFormat, s.days.Today())
	if err != nil {
		return nil, fmt.Errorf("parsing today: %w", err)
	}

	result := model.StreakResult{
		ActivityName: activityName,
		DaysChecked:  daysToCheck,
	}

	chainAlive := true
	run := 0
	for i := 0; i < daysToCheck; i++ {
		date := today.AddDate(0, 0, -i).Format(model.DateFormat)
		qualifies, err := s.dayQualifies(ctx, userID, date, activityName, fields)
		if err != nil {
			return nil, err
		}

		if qualifies {
			run++
			if run > result.LongestStreak {
				result.LongestStreak = run
			}
			if chainAlive {
				result.CurrentStreak = run
			}
		} else {
			run = 0
			chainAlive = false
		}
	}

	return &result, nil
}

func (s *ProgressService) dayQualifies(
	ctx context.Context,
	userID uuid.UUID,
	date, activityName string,
	fields []model.TrackerField,
) (bool, error) {
	log, err := s.store.GetDailyLog(ctx, userID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("getting daily log for %s on %s: %w", userID, date, err)
	}
	tracker, err := s.store.GetTracker(ctx, log.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("getting tracker %s: %w", log.ID, err)
	}

	activity, _ := tracker.Find(activityName, fields)
	if activity == nil {
		return false, nil
	}
	return activity.MetGoal(), nil
}

// ValidateActivity reports whether a named activity exists in the day's
// tracker and whether progress can be tracked against it.
func (s *ProgressService) ValidateActivity(
	ctx context.Context,
	userID uuid.UUID,
	date, activityName, category string,
) (*model.ActivityValidation, error) {
	fields, err := model.FieldsForCategory(category)
	if err != nil {
		return nil, err
	}

	tracker, err := s.days.trackerFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	activity, _ := tracker.Find(activityName, fields)
	if activity == nil {
		return &model.ActivityValidation{
			ActivityName: activityName,
			Messages:     []string{fmt.Sprintf("Activity %q not found", activityName)},
		}, nil
	}

	return &model.ActivityValidation{
		IsValid:          true,
		ActivityName:     activityName,
		Exists:           true,
		HasQuota:         activity.Configuration.Quota.Value > 0,
		CanTrackProgress: true,
		Messages:         []string{},
	}, nil
}

// GenerateDailySummary composes a short display string from the latest
// check-in values, the progress summary, and entry counts. It is not a
// stored field and carries no stability guarantees.
func (s *ProgressService) GenerateDailySummary(ctx context.Context, userID uuid.UUID, date string) (string, error) {
	detail, err := s.days.DailyLogDetail(ctx, userID, date)
	if err != nil {
		return "", err
	}

	var parts []string

	latest, err := s.days.LatestCheckinValues(ctx, userID, date)
	if err != nil {
		return "", err
	}
	if latest.Mood != nil || latest.StressLevel != nil || latest.EnergyLevel != nil || latest.Sleep != nil {
		parts = append(parts, fmt.Sprintf(
			"Latest check-in: Mood: %s, Stress: %s, Energy: %s",
			orNone(latest.Mood), orNone(latest.StressLevel), orNone(latest.EnergyLevel)))
	}

	progress, err := s.ProgressSummary(ctx, userID, date)
	if err != nil {
		return "", err
	}
	parts = append(parts, fmt.Sprintf(
		"Activities: %d/%d completed (%g%%)",
		progress.Completed, progress.Total, progress.CompletionRate))

	if n := len(detail.Journal.Entries); n > 0 {
		parts = append(parts, fmt.Sprintf("%d journal entries", n))
	}
	if n := len(detail.Chatbot.Conversation); n > 0 {
		parts = append(parts, fmt.Sprintf("%d chat messages", n))
	}

	return strings.Join(parts, " | "), nil
}

func orNone(v *string) string {
	if v == nil {
		return "none"
	}
	return *v
}

// BulkUpdateActivities applies many progress updates sequentially and
// independently. A failed item does not roll back earlier successes.
func (s *ProgressService) BulkUpdateActivities(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	updates []model.CompleteUpdate,
) (*model.BulkUpdateResult, error) {
	result := model.BulkUpdateResult{Errors: []string{}}

	for _, u := range updates {
		if u.Name == "" {
			result.ErrorCount++
			result.Errors = append(result.Errors, "invalid update: missing activity name")
			continue
		}
		_, err := s.days.UpdateActivityComplete(ctx, userID, date, u.Name, u.Complete, u.Category)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to update %q: %v", u.Name, err))
			continue
		}
		result.SuccessCount++
	}

	result.Message = fmt.Sprintf(
		"Bulk update completed: %d succeeded, %d failed", result.SuccessCount, result.ErrorCount)
	return &result, nil
}
