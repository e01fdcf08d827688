package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/model"
)

// Child rows share their daily log's ID and are created alongside it, so
// a missing row here means the log itself is gone.

// GetCheckin retrieves the check-in record attached to a daily log.
func (s *SQLiteStore) GetCheckin(ctx context.Context, logID uuid.UUID) (*model.Checkin, error) {
	var mood, stress, energy, sleep string
	c := model.Checkin{ID: logID}

	err := s.db.QueryRowxContext(ctx, `
		SELECT mood, stress_level, energy_level, sleep, created_at, last_updated_at
		FROM user_checkin WHERE id = ?`,
		logID.String(),
	).Scan(&mood, &stress, &energy, &sleep, &c.CreatedAt, &c.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting checkin %s: %w", logID, err)
	}

	if err := json.Unmarshal([]byte(mood), &c.Mood); err != nil {
		return nil, fmt.Errorf("unmarshaling mood: %w", err)
	}
	if err := json.Unmarshal([]byte(stress), &c.StressLevel); err != nil {
		return nil, fmt.Errorf("unmarshaling stress_level: %w", err)
	}
	if err := json.Unmarshal([]byte(energy), &c.EnergyLevel); err != nil {
		return nil, fmt.Errorf("unmarshaling energy_level: %w", err)
	}
	if err := json.Unmarshal([]byte(sleep), &c.Sleep); err != nil {
		return nil, fmt.Errorf("unmarshaling sleep: %w", err)
	}

	return &c, nil
}

// SaveCheckin writes a check-in record back, replacing all four series.
func (s *SQLiteStore) SaveCheckin(ctx context.Context, c model.Checkin) error {
	mood, err := json.Marshal(orEmptyStringMap(c.Mood))
	if err != nil {
		return fmt.Errorf("marshaling mood: %w", err)
	}
	stress, err := json.Marshal(orEmptyStringMap(c.StressLevel))
	if err != nil {
		return fmt.Errorf("marshaling stress_level: %w", err)
	}
	energy, err := json.Marshal(orEmptyStringMap(c.EnergyLevel))
	if err != nil {
		return fmt.Errorf("marshaling energy_level: %w", err)
	}
	sleep, err := json.Marshal(orEmptySleepMap(c.Sleep))
	if err != nil {
		return fmt.Errorf("marshaling sleep: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user_checkin
		SET mood = ?, stress_level = ?, energy_level = ?, sleep = ?, last_updated_at = ?
		WHERE id = ?`,
		string(mood), string(stress), string(energy), string(sleep),
		c.LastUpdatedAt.UTC(), c.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("saving checkin %s: %w", c.ID, err)
	}
	return requireAffected(res, "checkin", c.ID)
}

// GetJournal retrieves the journal record attached to a daily log.
func (s *SQLiteStore) GetJournal(ctx context.Context, logID uuid.UUID) (*model.Journal, error) {
	var entries, analysis string
	j := model.Journal{ID: logID}

	err := s.db.QueryRowxContext(ctx, `
		SELECT journal, analysis, created_at, last_updated_at
		FROM user_journal WHERE id = ?`,
		logID.String(),
	).Scan(&entries, &analysis, &j.CreatedAt, &j.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting journal %s: %w", logID, err)
	}

	if err := json.Unmarshal([]byte(entries), &j.Entries); err != nil {
		return nil, fmt.Errorf("unmarshaling journal entries: %w", err)
	}
	if err := json.Unmarshal([]byte(analysis), &j.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshaling journal analysis: %w", err)
	}

	return &j, nil
}

// SaveJournal writes a journal record back.
func (s *SQLiteStore) SaveJournal(ctx context.Context, j model.Journal) error {
	entries, err := json.Marshal(orEmptyEntryMap(j.Entries))
	if err != nil {
		return fmt.Errorf("marshaling journal entries: %w", err)
	}
	analysis, err := json.Marshal(orEmptyAnyMap(j.Analysis))
	if err != nil {
		return fmt.Errorf("marshaling journal analysis: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user_journal
		SET journal = ?, analysis = ?, last_updated_at = ?
		WHERE id = ?`,
		string(entries), string(analysis), j.LastUpdatedAt.UTC(), j.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("saving journal %s: %w", j.ID, err)
	}
	return requireAffected(res, "journal", j.ID)
}

// GetChatbotLog retrieves the conversation record attached to a daily log.
func (s *SQLiteStore) GetChatbotLog(ctx context.Context, logID uuid.UUID) (*model.ChatbotLog, error) {
	var conversation, analysis string
	c := model.ChatbotLog{ID: logID}

	err := s.db.QueryRowxContext(ctx, `
		SELECT conversation, analysis, created_at, last_updated_at
		FROM user_chatbot_log WHERE id = ?`,
		logID.String(),
	).Scan(&conversation, &analysis, &c.CreatedAt, &c.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting chatbot log %s: %w", logID, err)
	}

	if err := json.Unmarshal([]byte(conversation), &c.Conversation); err != nil {
		return nil, fmt.Errorf("unmarshaling conversation: %w", err)
	}
	if err := json.Unmarshal([]byte(analysis), &c.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshaling chatbot analysis: %w", err)
	}

	return &c, nil
}

// SaveChatbotLog writes a conversation record back.
func (s *SQLiteStore) SaveChatbotLog(ctx context.Context, c model.ChatbotLog) error {
	messages := c.Conversation
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	conversation, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshaling conversation: %w", err)
	}
	analysis, err := json.Marshal(orEmptyAnyMap(c.Analysis))
	if err != nil {
		return fmt.Errorf("marshaling chatbot analysis: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user_chatbot_log
		SET conversation = ?, analysis = ?, last_updated_at = ?
		WHERE id = ?`,
		string(conversation), string(analysis), c.LastUpdatedAt.UTC(), c.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("saving chatbot log %s: %w", c.ID, err)
	}
	return requireAffected(res, "chatbot log", c.ID)
}

// GetTracker retrieves the activity tracker attached to a daily log.
func (s *SQLiteStore) GetTracker(ctx context.Context, logID uuid.UUID) (*model.ActivityTracker, error) {
	var lists [8]string
	t := model.ActivityTracker{ID: logID}

	err := s.db.QueryRowxContext(ctx, `
		SELECT health_activity, work_activity, growth_activity, relationship_activity,
			health_coping, productivity_coping, mindfulness_coping, relationship_coping,
			created_at, updated_at
		FROM user_activity_tracker WHERE id = ?`,
		logID.String(),
	).Scan(&lists[0], &lists[1], &lists[2], &lists[3],
		&lists[4], &lists[5], &lists[6], &lists[7],
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting activity tracker %s: %w", logID, err)
	}

	for i, field := range model.TrackerFields {
		if err := json.Unmarshal([]byte(lists[i]), t.List(field)); err != nil {
			return nil, fmt.Errorf("unmarshaling %s: %w", field, err)
		}
	}

	return &t, nil
}

// SaveTracker writes all eight activity lists back.
func (s *SQLiteStore) SaveTracker(ctx context.Context, t model.ActivityTracker) error {
	lists, err := marshalTrackerLists(t)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user_activity_tracker
		SET health_activity = ?, work_activity = ?, growth_activity = ?, relationship_activity = ?,
			health_coping = ?, productivity_coping = ?, mindfulness_coping = ?, relationship_coping = ?,
			updated_at = ?
		WHERE id = ?`,
		lists[model.FieldHealthActivity], lists[model.FieldWorkActivity],
		lists[model.FieldGrowthActivity], lists[model.FieldRelationshipActivity],
		lists[model.FieldHealthCoping], lists[model.FieldProductivityCoping],
		lists[model.FieldMindfulnessCoping], lists[model.FieldRelationshipCoping],
		t.UpdatedAt.UTC(), t.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("saving activity tracker %s: %w", t.ID, err)
	}
	return requireAffected(res, "activity tracker", t.ID)
}

func marshalTrackerLists(t model.ActivityTracker) (map[model.TrackerField]string, error) {
	out := make(map[model.TrackerField]string, len(model.TrackerFields))
	for _, field := range model.TrackerFields {
		list := *t.List(field)
		if list == nil {
			list = []model.Activity{}
		}
		data, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", field, err)
		}
		out[field] = string(data)
	}
	return out, nil
}

func requireAffected(res sql.Result, kind string, id uuid.UUID) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving %s %s: %w", kind, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func orEmptySleepMap(m map[string]model.SleepEntry) map[string]model.SleepEntry {
	if m == nil {
		return map[string]model.SleepEntry{}
	}
	return m
}

func orEmptyEntryMap(m map[string]model.JournalEntry) map[string]model.JournalEntry {
	if m == nil {
		return map[string]model.JournalEntry{}
	}
	return m
}
