package store_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/model"
	"github.com/mtran/wellness-backend/internal/store"
	"github.com/mtran/wellness-backend/tests/testutil"
)

func mustActivity(t *testing.T, name string, pillar model.Pillar, complete float64) model.Activity {
	t.Helper()
	a, err := model.BuildActivity(name, "", pillar, model.DimensionCount, complete, "times", 3, model.FrequencyDaily)
	if err != nil {
		t.Fatalf("BuildActivity(%q) error: %v", name, err)
	}
	return a
}

func TestPrioritiesRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	p := model.Priorities{
		ID:          userID,
		DisplayName: "Minh",
		PillarImportance: map[model.Pillar]float64{
			model.PillarHealth: 0.5,
			model.PillarWork:   0.5,
		},
		HealthGoals:      "Sleep more",
		HealthActivities: []model.Activity{mustActivity(t, "Walk", model.PillarHealth, 0)},
		PrivacySettings:  map[string]any{"share_progress": false},
		LastUpdatedAt:    time.Now().UTC(),
	}

	if err := s.CreatePriorities(ctx, p); err != nil {
		t.Fatalf("CreatePriorities() error: %v", err)
	}

	got, err := s.GetPriorities(ctx, userID)
	if err != nil {
		t.Fatalf("GetPriorities() error: %v", err)
	}
	if got.DisplayName != "Minh" || got.HealthGoals != "Sleep more" {
		t.Errorf("GetPriorities() profile = %q/%q", got.DisplayName, got.HealthGoals)
	}
	if !reflect.DeepEqual(got.PillarImportance, p.PillarImportance) {
		t.Errorf("PillarImportance = %v, want %v", got.PillarImportance, p.PillarImportance)
	}
	if len(got.HealthActivities) != 1 || got.HealthActivities[0].Name != "Walk" {
		t.Errorf("HealthActivities = %+v", got.HealthActivities)
	}
	if got.WorkActivities == nil || len(got.WorkActivities) != 0 {
		t.Errorf("WorkActivities = %v, want empty non-nil list", got.WorkActivities)
	}

	// Save replaces the whole record.
	got.WorkActivities = append(got.WorkActivities, mustActivity(t, "Standup", model.PillarWork, 0))
	if err := s.SavePriorities(ctx, *got); err != nil {
		t.Fatalf("SavePriorities() error: %v", err)
	}
	reread, err := s.GetPriorities(ctx, userID)
	if err != nil {
		t.Fatalf("GetPriorities() after save error: %v", err)
	}
	if len(reread.WorkActivities) != 1 {
		t.Errorf("WorkActivities after save = %+v", reread.WorkActivities)
	}
}

func TestPrioritiesNotFoundAndDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := s.GetPriorities(ctx, userID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetPriorities() error = %v, want ErrNotFound", err)
	}
	if err := s.DeletePriorities(ctx, userID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeletePriorities() error = %v, want ErrNotFound", err)
	}

	if err := s.CreatePriorities(ctx, model.Priorities{ID: userID, LastUpdatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("CreatePriorities() error: %v", err)
	}
	exists, err := s.PrioritiesExist(ctx, userID)
	if err != nil || !exists {
		t.Fatalf("PrioritiesExist() = %v, %v; want true, nil", exists, err)
	}
	if err := s.DeletePriorities(ctx, userID); err != nil {
		t.Fatalf("DeletePriorities() error: %v", err)
	}
	exists, err = s.PrioritiesExist(ctx, userID)
	if err != nil || exists {
		t.Fatalf("PrioritiesExist() after delete = %v, %v; want false, nil", exists, err)
	}
}

func newDay(t *testing.T, s *store.SQLiteStore, userID uuid.UUID, date string, tracker model.ActivityTracker) model.DailyLog {
	t.Helper()
	log := model.DailyLog{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	tracker.ID = log.ID
	if err := s.CreateDailyLog(context.Background(), log, tracker); err != nil {
		t.Fatalf("CreateDailyLog(%s) error: %v", date, err)
	}
	return log
}

func TestDailyLogCreateAndChildren(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	tracker := model.ActivityTracker{
		HealthActivity: []model.Activity{mustActivity(t, "Walk", model.PillarHealth, 2)},
	}
	log := newDay(t, s, userID, "2026-08-30", tracker)

	got, err := s.GetDailyLog(ctx, userID, "2026-08-30")
	if err != nil {
		t.Fatalf("GetDailyLog() error: %v", err)
	}
	if got.ID != log.ID {
		t.Errorf("GetDailyLog() id = %s, want %s", got.ID, log.ID)
	}

	// All four children exist immediately after create.
	checkin, err := s.GetCheckin(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetCheckin() error: %v", err)
	}
	if len(checkin.Mood) != 0 {
		t.Errorf("new checkin mood = %v, want empty", checkin.Mood)
	}
	if _, err := s.GetJournal(ctx, log.ID); err != nil {
		t.Fatalf("GetJournal() error: %v", err)
	}
	if _, err := s.GetChatbotLog(ctx, log.ID); err != nil {
		t.Fatalf("GetChatbotLog() error: %v", err)
	}
	tr, err := s.GetTracker(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetTracker() error: %v", err)
	}
	if len(tr.HealthActivity) != 1 || tr.HealthActivity[0].Configuration.Complete != 2 {
		t.Errorf("GetTracker() health = %+v", tr.HealthActivity)
	}
}

func TestDailyLogChildRoundTrips(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	log := newDay(t, s, uuid.New(), "2026-08-30", model.ActivityTracker{})

	checkin, _ := s.GetCheckin(ctx, log.ID)
	checkin.Mood = map[string]string{"2026-08-30T08:00:00": "happy"}
	checkin.Sleep = map[string]model.SleepEntry{
		"2026-08-30T07:00:00": {Duration: 7.5, Quality: "good"},
	}
	checkin.LastUpdatedAt = time.Now().UTC()
	if err := s.SaveCheckin(ctx, *checkin); err != nil {
		t.Fatalf("SaveCheckin() error: %v", err)
	}
	reread, err := s.GetCheckin(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetCheckin() error: %v", err)
	}
	if reread.Mood["2026-08-30T08:00:00"] != "happy" {
		t.Errorf("checkin mood = %v", reread.Mood)
	}
	if reread.Sleep["2026-08-30T07:00:00"].Duration != 7.5 {
		t.Errorf("checkin sleep = %v", reread.Sleep)
	}

	journal, _ := s.GetJournal(ctx, log.ID)
	journal.Entries = map[string]model.JournalEntry{
		"2026-08-30T09:00:00": {Type: "note", Content: "calm morning", Topics: []string{"mood"}},
	}
	journal.LastUpdatedAt = time.Now().UTC()
	if err := s.SaveJournal(ctx, *journal); err != nil {
		t.Fatalf("SaveJournal() error: %v", err)
	}
	j, err := s.GetJournal(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetJournal() error: %v", err)
	}
	if j.Entries["2026-08-30T09:00:00"].Content != "calm morning" {
		t.Errorf("journal entries = %v", j.Entries)
	}

	chat, _ := s.GetChatbotLog(ctx, log.ID)
	chat.Conversation = []model.ChatMessage{
		{Role: "user", Content: "hi", Timestamp: "2026-08-30T10:00:00Z"},
		{Role: "assistant", Content: "hello", Timestamp: "2026-08-30T10:00:02Z"},
	}
	chat.LastUpdatedAt = time.Now().UTC()
	if err := s.SaveChatbotLog(ctx, *chat); err != nil {
		t.Fatalf("SaveChatbotLog() error: %v", err)
	}
	c, err := s.GetChatbotLog(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetChatbotLog() error: %v", err)
	}
	if len(c.Conversation) != 2 || c.Conversation[1].Role != "assistant" {
		t.Errorf("conversation = %+v", c.Conversation)
	}
}

func TestDailyLogCascadeDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	log := newDay(t, s, userID, "2026-08-30", model.ActivityTracker{})

	if err := s.DeleteDailyLog(ctx, userID, "2026-08-30"); err != nil {
		t.Fatalf("DeleteDailyLog() error: %v", err)
	}

	if _, err := s.GetDailyLog(ctx, userID, "2026-08-30"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetDailyLog() after delete = %v, want ErrNotFound", err)
	}
	if _, err := s.GetCheckin(ctx, log.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetCheckin() after delete = %v, want ErrNotFound", err)
	}
	if _, err := s.GetTracker(ctx, log.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetTracker() after delete = %v, want ErrNotFound", err)
	}
}

func TestGetDailyLogsInRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"2026-08-28", "2026-08-30", "2026-08-25"} {
		newDay(t, s, userID, date, model.ActivityTracker{})
	}
	// Another user's day must not leak into the range.
	newDay(t, s, uuid.New(), "2026-08-28", model.ActivityTracker{})

	logs, err := s.GetDailyLogsInRange(ctx, userID, "2026-08-26", "2026-08-30")
	if err != nil {
		t.Fatalf("GetDailyLogsInRange() error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("GetDailyLogsInRange() returned %d logs, want 2", len(logs))
	}
	if logs[0].Date != "2026-08-28" || logs[1].Date != "2026-08-30" {
		t.Errorf("dates = %s, %s; want ascending order", logs[0].Date, logs[1].Date)
	}
}

func TestDuplicateDayRejected(t *testing.T) {
	s := testutil.NewTestStore(t)
	userID := uuid.New()
	newDay(t, s, userID, "2026-08-30", model.ActivityTracker{})

	dup := model.DailyLog{ID: uuid.New(), UserID: userID, Date: "2026-08-30", CreatedAt: time.Now().UTC()}
	if err := s.CreateDailyLog(context.Background(), dup, model.ActivityTracker{ID: dup.ID}); err == nil {
		t.Error("CreateDailyLog() for duplicate (user, date) should fail")
	}
}
