package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/apperr"
	"github.com/mtran/wellness-backend/internal/model"
	"github.com/mtran/wellness-backend/internal/store"
)

// DailyLogService manages per-day documents: the daily log root row and
// its checkin, journal, chatbot and activity-tracker children. A day's
// tracker is seeded from the priorities catalog with progress zeroed,
// then evolves independently.
type DailyLogService struct {
	store store.Store

	// now is swappable so date-sensitive behavior can be pinned in tests.
	now func() time.Time
}

func NewDailyLogService(s store.Store) *DailyLogService {
	return &DailyLogService{store: s, now: time.Now}
}

// Today returns the current calendar date string.
func (s *DailyLogService) Today() string {
	return s.now().UTC().Format(model.DateFormat)
}

func (s *DailyLogService) resolveDate(date string) (string, error) {
	if date == "" {
		return s.Today(), nil
	}
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		return "", apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}

// GetOrCreateDailyLog returns the day's log, creating it (with its four
// child records) on first access. When the user has priorities, the new
// tracker is seeded from them with progress reset; a user without
// priorities still gets an empty day.
func (s *DailyLogService) GetOrCreateDailyLog(ctx context.Context, userID uuid.UUID, date string) (*model.DailyLog, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	log, err := s.store.GetDailyLog(ctx, userID, date)
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting daily log for %s on %s: %w", userID, date, err)
	}

	now := s.now().UTC()
	newLog := model.DailyLog{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		CreatedAt: now,
	}
	tracker := model.ActivityTracker{
		ID:        newLog.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	p, err := s.store.GetPriorities(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting priorities for %s: %w", userID, err)
	}
	if p != nil {
		seedTracker(&tracker, p)
	}

	if err := s.store.CreateDailyLog(ctx, newLog, tracker); err != nil {
		return nil, fmt.Errorf("creating daily log for %s on %s: %w", userID, date, err)
	}
	return &newLog, nil
}

// seedTracker copies the catalog's pillar lists into the tracker's
// activity lists with progress zeroed. Coping lists start empty.
func seedTracker(t *model.ActivityTracker, p *model.Priorities) {
	fields := map[model.Pillar]model.TrackerField{
		model.PillarHealth:        model.FieldHealthActivity,
		model.PillarWork:          model.FieldWorkActivity,
		model.PillarGrowth:        model.FieldGrowthActivity,
		model.PillarRelationships: model.FieldRelationshipActivity,
	}
	for pillar, activities := range p.AllActivities() {
		list := t.List(fields[pillar])
		for _, a := range activities {
			*list = append(*list, a.Snapshot())
		}
	}
}

// InitializeDailyActivities populates the day's tracker from priorities.
// Already-populated trackers are left alone. A user with no priorities
// gets a validation error, unlike GetOrCreateDailyLog which tolerates it.
func (s *DailyLogService) InitializeDailyActivities(ctx context.Context, userID uuid.UUID, date string) (*model.ActivityTracker, error) {
	p, err := s.store.GetPriorities(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Validationf("cannot initialize daily activities: user %s has no priorities", userID)
		}
		return nil, fmt.Errorf("getting priorities for %s: %w", userID, err)
	}

	log, err := s.GetOrCreateDailyLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	tracker, err := s.store.GetTracker(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting tracker %s: %w", log.ID, err)
	}
	if tracker.HasActivities() {
		return tracker, nil
	}

	seedTracker(tracker, p)
	if err := s.saveTracker(ctx, tracker); err != nil {
		return nil, err
	}
	return tracker, nil
}

// DailyLogDetail returns the composed view of a day: the log row plus
// all four children.
func (s *DailyLogService) DailyLogDetail(ctx context.Context, userID uuid.UUID, date string) (*model.DailyLogDetail, error) {
	log, err := s.GetOrCreateDailyLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	checkin, err := s.store.GetCheckin(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting checkin %s: %w", log.ID, err)
	}
	journal, err := s.store.GetJournal(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting journal %s: %w", log.ID, err)
	}
	chatbot, err := s.store.GetChatbotLog(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting chatbot log %s: %w", log.ID, err)
	}
	tracker, err := s.store.GetTracker(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting tracker %s: %w", log.ID, err)
	}

	return &model.DailyLogDetail{
		DailyLog: *log,
		Checkin:  *checkin,
		Journal:  *journal,
		Chatbot:  *chatbot,
		Tracker:  *tracker,
	}, nil
}

// LogsInRange returns compact per-day rows between two dates inclusive.
func (s *DailyLogService) LogsInRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]model.DailyLogListItem, error) {
	startDate, err := s.resolveDate(startDate)
	if err != nil {
		return nil, err
	}
	endDate, err = s.resolveDate(endDate)
	if err != nil {
		return nil, err
	}
	if startDate > endDate {
		return nil, apperr.Validationf("start date %s is after end date %s", startDate, endDate)
	}

	logs, err := s.store.GetDailyLogsInRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("listing daily logs for %s: %w", userID, err)
	}

	items := make([]model.DailyLogListItem, 0, len(logs))
	for _, log := range logs {
		item := model.DailyLogListItem{
			ID:      log.ID,
			Date:    log.Date,
			Summary: log.CurrentStatusSummary,
		}

		checkin, err := s.store.GetCheckin(ctx, log.ID)
		if err != nil {
			return nil, fmt.Errorf("getting checkin %s: %w", log.ID, err)
		}
		item.HasCheckin = len(checkin.Mood) > 0

		tracker, err := s.store.GetTracker(ctx, log.ID)
		if err != nil {
			return nil, fmt.Errorf("getting tracker %s: %w", log.ID, err)
		}
		for _, field := range model.ActivityFields {
			item.ActivityCount += len(*tracker.List(field))
		}

		items = append(items, item)
	}
	return items, nil
}

// DeleteDailyLog removes a day's log and (by cascade) all its children.
func (s *DailyLogService) DeleteDailyLog(ctx context.Context, userID uuid.UUID, date string) error {
	date, err := s.resolveDate(date)
	if err != nil {
		return err
	}
	err = s.store.DeleteDailyLog(ctx, userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Wrap(apperr.KindNotFound, err, fmt.Sprintf("no daily log found for %s on %s", userID, date))
	}
	return err
}

// === Check-ins ===

func (s *DailyLogService) checkinFor(ctx context.Context, userID uuid.UUID, date string) (*model.Checkin, error) {
	log, err := s.GetOrCreateDailyLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetCheckin(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting checkin %s: %w", log.ID, err)
	}
	return c, nil
}

func (s *DailyLogService) saveCheckin(ctx context.Context, c *model.Checkin) error {
	c.LastUpdatedAt = s.now().UTC()
	if err := s.store.SaveCheckin(ctx, *c); err != nil {
		return fmt.Errorf("saving checkin %s: %w", c.ID, err)
	}
	return nil
}

func labelSeries(c *model.Checkin, field model.CheckinField) (map[string]string, error) {
	switch field {
	case model.CheckinMood:
		if c.Mood == nil {
			c.Mood = map[string]string{}
		}
		return c.Mood, nil
	case model.CheckinStress:
		if c.StressLevel == nil {
			c.StressLevel = map[string]string{}
		}
		return c.StressLevel, nil
	case model.CheckinEnergy:
		if c.EnergyLevel == nil {
			c.EnergyLevel = map[string]string{}
		}
		return c.EnergyLevel, nil
	}
	return nil, apperr.Validationf("invalid check-in field: %q", field)
}

// AddCheckinEntry records a label-valued check-in (mood, stress_level,
// energy_level) at a timestamp. Timestamps are unique per field.
func (s *DailyLogService) AddCheckinEntry(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	field model.CheckinField,
	timestamp, label string,
) error {
	if timestamp == "" {
		return apperr.Validationf("check-in timestamp must not be empty")
	}
	if err := model.ValidateCheckinLabel(field, label); err != nil {
		return err
	}

	c, err := s.checkinFor(ctx, userID, date)
	if err != nil {
		return err
	}
	series, err := labelSeries(c, field)
	if err != nil {
		return err
	}
	if _, exists := series[timestamp]; exists {
		return apperr.Conflictf("%s entry already exists at %s", field, timestamp)
	}
	series[timestamp] = label

	return s.saveCheckin(ctx, c)
}

// UpdateCheckinEntry replaces an existing label-valued entry.
func (s *DailyLogService) UpdateCheckinEntry(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	field model.CheckinField,
	timestamp, label string,
) error {
	if err := model.ValidateCheckinLabel(field, label); err != nil {
		return err
	}

	c, err := s.checkinFor(ctx, userID, date)
	if err != nil {
		return err
	}
	series, err := labelSeries(c, field)
	if err != nil {
		return err
	}
	if _, exists := series[timestamp]; !exists {
		return apperr.NotFoundf("no %s entry found at %s", field, timestamp)
	}
	series[timestamp] = label

	return s.saveCheckin(ctx, c)
}

// AddSleepEntry records a sleep check-in at a timestamp.
func (s *DailyLogService) AddSleepEntry(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	timestamp string,
	entry model.SleepEntry,
) error {
	if timestamp == "" {
		return apperr.Validationf("check-in timestamp must not be empty")
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	c, err := s.checkinFor(ctx, userID, date)
	if err != nil {
		return err
	}
	if c.Sleep == nil {
		c.Sleep = map[string]model.SleepEntry{}
	}
	if _, exists := c.Sleep[timestamp]; exists {
		return apperr.Conflictf("sleep entry already exists at %s", timestamp)
	}
	c.Sleep[timestamp] = entry

	return s.saveCheckin(ctx, c)
}

// UpdateSleepEntry replaces an existing sleep entry.
func (s *DailyLogService) UpdateSleepEntry(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	timestamp string,
	entry model.SleepEntry,
) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	c, err := s.checkinFor(ctx, userID, date)
	if err != nil {
		return err
	}
	if _, exists := c.Sleep[timestamp]; !exists {
		return apperr.NotFoundf("no sleep entry found at %s", timestamp)
	}
	c.Sleep[timestamp] = entry

	return s.saveCheckin(ctx, c)
}

// LatestCheckinValues returns the most recent entry per field, chosen
// by maximal timestamp key. ISO-8601 timestamps sort lexically.
func (s *DailyLogService) LatestCheckinValues(ctx context.Context, userID uuid.UUID, date string) (*model.LatestCheckinValues, error) {
	c, err := s.checkinFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	latest := model.LatestCheckinValues{}
	if ts := maxKey(c.Mood); ts != "" {
		v := c.Mood[ts]
		latest.Mood = &v
	}
	if ts := maxKey(c.StressLevel); ts != "" {
		v := c.StressLevel[ts]
		latest.StressLevel = &v
	}
	if ts := maxKey(c.EnergyLevel); ts != "" {
		v := c.EnergyLevel[ts]
		latest.EnergyLevel = &v
	}
	if ts := maxKey(c.Sleep); ts != "" {
		v := c.Sleep[ts]
		latest.Sleep = &v
	}
	return &latest, nil
}

func maxKey[V any](m map[string]V) string {
	var max string
	for k := range m {
		if k > max {
			max = k
		}
	}
	return max
}

// CheckinHistory returns the day's full check-in record.
func (s *DailyLogService) CheckinHistory(ctx context.Context, userID uuid.UUID, date string) (*model.Checkin, error) {
	return s.checkinFor(ctx, userID, date)
}

// ClearCheckin empties all four check-in series for the day.
func (s *DailyLogService) ClearCheckin(ctx context.Context, userID uuid.UUID, date string) error {
	c, err := s.checkinFor(ctx, userID, date)
	if err != nil {
		return err
	}
	c.Mood = map[string]string{}
	c.StressLevel = map[string]string{}
	c.EnergyLevel = map[string]string{}
	c.Sleep = map[string]model.SleepEntry{}
	return s.saveCheckin(ctx, c)
}

// === Journal ===

func (s *DailyLogService) journalFor(ctx context.Context, userID uuid.UUID, date string) (*model.Journal, error) {
	log, err := s.GetOrCreateDailyLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	j, err := s.store.GetJournal(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting journal %s: %w", log.ID, err)
	}
	return j, nil
}

func (s *DailyLogService) saveJournal(ctx context.Context, j *model.Journal) error {
	j.LastUpdatedAt = s.now().UTC()
	if err := s.store.SaveJournal(ctx, *j); err != nil {
		return fmt.Errorf("saving journal %s: %w", j.ID, err)
	}
	return nil
}

// AddJournalEntry records a journal entry at a timestamp.
func (s *DailyLogService) AddJournalEntry(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	timestamp string,
	entry model.JournalEntry,
) error {
	if timestamp == "" {
		return apperr.Validationf("journal timestamp must not be empty")
	}
	if entry.Content == "" {
		return apperr.Validationf("journal entry content must not be empty")
	}

	j, err := s.journalFor(ctx, userID, date)
	if err != nil {
		return err
	}
	if j.Entries == nil {
		j.Entries = map[string]model.JournalEntry{}
	}
	if _, exists := j.Entries[timestamp]; exists {
		return apperr.Conflictf("journal entry already exists at %s", timestamp)
	}
	j.Entries[timestamp] = entry

	return s.saveJournal(ctx, j)
}

// UpdateJournalEntry applies a partial update to an existing entry.
func (s *DailyLogService) UpdateJournalEntry(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	timestamp string,
	u model.JournalEntryUpdate,
) error {
	j, err := s.journalFor(ctx, userID, date)
	if err != nil {
		return err
	}
	entry, exists := j.Entries[timestamp]
	if !exists {
		return apperr.NotFoundf("no journal entry found at %s", timestamp)
	}
	j.Entries[timestamp] = u.Apply(entry)

	return s.saveJournal(ctx, j)
}

// JournalEntries returns the day's journal record.
func (s *DailyLogService) JournalEntries(ctx context.Context, userID uuid.UUID, date string) (*model.Journal, error) {
	return s.journalFor(ctx, userID, date)
}

// DeleteJournalEntry removes the entry at a timestamp.
func (s *DailyLogService) DeleteJournalEntry(ctx context.Context, userID uuid.UUID, date, timestamp string) error {
	j, err := s.journalFor(ctx, userID, date)
	if err != nil {
		return err
	}
	if _, exists := j.Entries[timestamp]; !exists {
		return apperr.NotFoundf("no journal entry found at %s", timestamp)
	}
	delete(j.Entries, timestamp)

	return s.saveJournal(ctx, j)
}

// === Chatbot ===

func (s *DailyLogService) chatbotFor(ctx context.Context, userID uuid.UUID, date string) (*model.ChatbotLog, error) {
	log, err := s.GetOrCreateDailyLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	c, err := s.store.GetChatbotLog(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting chatbot log %s: %w", log.ID, err)
	}
	return c, nil
}

func (s *DailyLogService) saveChatbot(ctx context.Context, c *model.ChatbotLog) error {
	c.LastUpdatedAt = s.now().UTC()
	if err := s.store.SaveChatbotLog(ctx, *c); err != nil {
		return fmt.Errorf("saving chatbot log %s: %w", c.ID, err)
	}
	return nil
}

// AddChatMessage appends one conversation turn. Order is append-only.
func (s *DailyLogService) AddChatMessage(ctx context.Context, userID uuid.UUID, date, role, content string) error {
	if role != "user" && role != "assistant" {
		return apperr.Validationf("invalid chat role %q, must be user or assistant", role)
	}
	if content == "" {
		return apperr.Validationf("chat message content must not be empty")
	}

	c, err := s.chatbotFor(ctx, userID, date)
	if err != nil {
		return err
	}
	c.Conversation = append(c.Conversation, model.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})

	return s.saveChatbot(ctx, c)
}

// Conversation returns the day's chat history in order.
func (s *DailyLogService) Conversation(ctx context.Context, userID uuid.UUID, date string) ([]model.ChatMessage, error) {
	c, err := s.chatbotFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return c.Conversation, nil
}

// DeleteChatMessage removes one message by its position.
func (s *DailyLogService) DeleteChatMessage(ctx context.Context, userID uuid.UUID, date string, index int) error {
	c, err := s.chatbotFor(ctx, userID, date)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(c.Conversation) {
		return apperr.NotFoundf("no chat message at index %d (conversation has %d)", index, len(c.Conversation))
	}
	c.Conversation = append(c.Conversation[:index], c.Conversation[index+1:]...)

	return s.saveChatbot(ctx, c)
}

// ClearConversation discards the day's chat history.
func (s *DailyLogService) ClearConversation(ctx context.Context, userID uuid.UUID, date string) error {
	c, err := s.chatbotFor(ctx, userID, date)
	if err != nil {
		return err
	}
	c.Conversation = []model.ChatMessage{}

	return s.saveChatbot(ctx, c)
}

// === Tracker mutations ===

// trackerFor loads the day's tracker, populating it from priorities
// when its activity lists are still empty and priorities exist.
func (s *DailyLogService) trackerFor(ctx context.Context, userID uuid.UUID, date string) (*model.ActivityTracker, error) {
	log, err := s.GetOrCreateDailyLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	tracker, err := s.store.GetTracker(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("getting tracker %s: %w", log.ID, err)
	}
	if tracker.HasActivities() {
		return tracker, nil
	}

	p, err := s.store.GetPriorities(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return tracker, nil
		}
		return nil, fmt.Errorf("getting priorities for %s: %w", userID, err)
	}
	seedTracker(tracker, p)
	if err := s.saveTracker(ctx, tracker); err != nil {
		return nil, err
	}
	return tracker, nil
}

func (s *DailyLogService) saveTracker(ctx context.Context, t *model.ActivityTracker) error {
	t.UpdatedAt = s.now().UTC()
	if err := s.store.SaveTracker(ctx, *t); err != nil {
		return fmt.Errorf("saving tracker %s: %w", t.ID, err)
	}
	return nil
}

// findActivity scans the tracker for a named activity, narrowed by
// category when one is given. First match in scan order wins.
func findActivity(t *model.ActivityTracker, name, category string) (*model.Activity, error) {
	fields, err := model.FieldsForCategory(category)
	if err != nil {
		return nil, err
	}
	activity, _ := t.Find(name, fields)
	if activity == nil {
		return nil, apperr.NotFoundf("activity %q not found in daily tracker", name)
	}
	return activity, nil
}

// UpdateActivityComplete sets an activity's progress for the day.
func (s *DailyLogService) UpdateActivityComplete(
	ctx context.Context,
	userID uuid.UUID,
	date, name string,
	complete float64,
	category string,
) (*model.Activity, error) {
	if complete < 0 {
		return nil, apperr.Validationf(
			"progress value for %q must be non-negative, got %g", name, complete)
	}

	tracker, err := s.trackerFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	activity, err := findActivity(tracker, name, category)
	if err != nil {
		return nil, err
	}
	activity.Configuration.Complete = complete

	if err := s.saveTracker(ctx, tracker); err != nil {
		return nil, err
	}
	return activity, nil
}

// IncrementActivityComplete adjusts an activity's progress by a delta.
// Negative deltas are allowed; the counter never goes below zero.
func (s *DailyLogService) IncrementActivityComplete(
	ctx context.Context,
	userID uuid.UUID,
	date, name string,
	delta float64,
	category string,
) (*model.Activity, error) {
	tracker, err := s.trackerFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	activity, err := findActivity(tracker, name, category)
	if err != nil {
		return nil, err
	}

	next := activity.Configuration.Complete + delta
	if next < 0 {
		next = 0
	}
	activity.Configuration.Complete = next

	if err := s.saveTracker(ctx, tracker); err != nil {
		return nil, err
	}
	return activity, nil
}

// ResetActivity zeroes one activity's progress for the day.
func (s *DailyLogService) ResetActivity(
	ctx context.Context,
	userID uuid.UUID,
	date, name, category string,
) (*model.Activity, error) {
	return s.UpdateActivityComplete(ctx, userID, date, name, 0, category)
}

// ResetCategoryActivities zeroes progress across one category's activity
// and coping lists, returning how many activities were touched.
func (s *DailyLogService) ResetCategoryActivities(ctx context.Context, userID uuid.UUID, date, category string) (int, error) {
	if category == "" {
		return 0, apperr.Validationf("category must not be empty")
	}
	fields, err := model.FieldsForCategory(category)
	if err != nil {
		return 0, err
	}

	tracker, err := s.trackerFor(ctx, userID, date)
	if err != nil {
		return 0, err
	}

	count := resetFields(tracker, fields)
	if err := s.saveTracker(ctx, tracker); err != nil {
		return 0, err
	}
	return count, nil
}

// ResetAllActivities zeroes progress across all eight lists.
func (s *DailyLogService) ResetAllActivities(ctx context.Context, userID uuid.UUID, date string) (int, error) {
	tracker, err := s.trackerFor(ctx, userID, date)
	if err != nil {
		return 0, err
	}

	count := resetFields(tracker, model.TrackerFields)
	if err := s.saveTracker(ctx, tracker); err != nil {
		return 0, err
	}
	return count, nil
}

func resetFields(t *model.ActivityTracker, fields []model.TrackerField) int {
	count := 0
	for _, field := range fields {
		list := t.List(field)
		for i := range *list {
			(*list)[i].Configuration.Complete = 0
			count++
		}
	}
	return count
}

// ActivityByName returns a copy of a named activity from the day's
// tracker.
func (s *DailyLogService) ActivityByName(
	ctx context.Context,
	userID uuid.UUID,
	date, name, category string,
) (*model.Activity, error) {
	tracker, err := s.trackerFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	activity, err := findActivity(tracker, name, category)
	if err != nil {
		return nil, err
	}

	copied := *activity
	return &copied, nil
}
