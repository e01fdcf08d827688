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

// CreateDailyLog inserts the daily log row and its four child rows in a
// single transaction, so a log can never exist without its children.
func (s *SQLiteStore) CreateDailyLog(ctx context.Context, log model.DailyLog, tracker model.ActivityTracker) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	frequency, err := json.Marshal(orEmptyIntMap(log.Frequency))
	if err != nil {
		return fmt.Errorf("marshaling frequency: %w", err)
	}
	activeHours, err := json.Marshal(orEmptyStringMap(log.ActiveHours))
	if err != nil {
		return fmt.Errorf("marshaling active_hours: %w", err)
	}

	createdAt := log.CreatedAt.UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_daily_log (id, user_id, date, current_status_summary, frequency, active_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID.String(), log.UserID.String(), log.Date,
		log.CurrentStatusSummary, string(frequency), string(activeHours), createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting daily log for %s on %s: %w", log.UserID, log.Date, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_checkin (id, mood, stress_level, energy_level, sleep, created_at, last_updated_at)
		VALUES (?, '{}', '{}', '{}', '{}', ?, ?)`,
		log.ID.String(), createdAt, createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting checkin for log %s: %w", log.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_journal (id, journal, analysis, created_at, last_updated_at)
		VALUES (?, '{}', '{}', ?, ?)`,
		log.ID.String(), createdAt, createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting journal for log %s: %w", log.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_chatbot_log (id, conversation, analysis, created_at, last_updated_at)
		VALUES (?, '[]', '{}', ?, ?)`,
		log.ID.String(), createdAt, createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting chatbot log for log %s: %w", log.ID, err)
	}

	lists, err := marshalTrackerLists(tracker)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_activity_tracker (
			id, health_activity, work_activity, growth_activity, relationship_activity,
			health_coping, productivity_coping, mindfulness_coping, relationship_coping,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID.String(),
		lists[model.FieldHealthActivity], lists[model.FieldWorkActivity],
		lists[model.FieldGrowthActivity], lists[model.FieldRelationshipActivity],
		lists[model.FieldHealthCoping], lists[model.FieldProductivityCoping],
		lists[model.FieldMindfulnessCoping], lists[model.FieldRelationshipCoping],
		createdAt, createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting activity tracker for log %s: %w", log.ID, err)
	}

	return tx.Commit()
}

// GetDailyLog retrieves the log row for a user and date, or ErrNotFound.
func (s *SQLiteStore) GetDailyLog(ctx context.Context, userID uuid.UUID, date string) (*model.DailyLog, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT id, user_id, date, current_status_summary, frequency, active_hours, created_at
		FROM user_daily_log WHERE user_id = ? AND date = ?`,
		userID.String(), date,
	)

	log, err := scanDailyLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting daily log for %s on %s: %w", userID, date, err)
	}
	return log, nil
}

// GetDailyLogsInRange retrieves a user's logs between two dates
// inclusive, ordered by date ascending.
func (s *SQLiteStore) GetDailyLogsInRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]model.DailyLog, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, user_id, date, current_status_summary, frequency, active_hours, created_at
		FROM user_daily_log
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID.String(), startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("querying daily logs for %s: %w", userID, err)
	}
	defer rows.Close()

	var logs []model.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning daily log row: %w", err)
		}
		logs = append(logs, *log)
	}

	return logs, rows.Err()
}

// SaveDailyLog updates the mutable root-row fields (summary, frequency,
// active hours). Children are saved through their own methods.
func (s *SQLiteStore) SaveDailyLog(ctx context.Context, log model.DailyLog) error {
	frequency, err := json.Marshal(orEmptyIntMap(log.Frequency))
	if err != nil {
		return fmt.Errorf("marshaling frequency: %w", err)
	}
	activeHours, err := json.Marshal(orEmptyStringMap(log.ActiveHours))
	if err != nil {
		return fmt.Errorf("marshaling active_hours: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE user_daily_log
		SET current_status_summary = ?, frequency = ?, active_hours = ?
		WHERE id = ?`,
		log.CurrentStatusSummary, string(frequency), string(activeHours), log.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("saving daily log %s: %w", log.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving daily log %s: %w", log.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDailyLog removes a log row; child rows cascade.
func (s *SQLiteStore) DeleteDailyLog(ctx context.Context, userID uuid.UUID, date string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_daily_log WHERE user_id = ? AND date = ?",
		userID.String(), date,
	)
	if err != nil {
		return fmt.Errorf("deleting daily log for %s on %s: %w", userID, date, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting daily log for %s on %s: %w", userID, date, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDailyLog(scan func(dest ...any) error) (*model.DailyLog, error) {
	var (
		log         model.DailyLog
		id          string
		userID      string
		frequency   string
		activeHours string
	)

	err := scan(&id, &userID, &log.Date, &log.CurrentStatusSummary,
		&frequency, &activeHours, &log.CreatedAt)
	if err != nil {
		return nil, err
	}

	if log.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing daily log id %q: %w", id, err)
	}
	if log.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parsing daily log user id %q: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(frequency), &log.Frequency); err != nil {
		return nil, fmt.Errorf("unmarshaling frequency: %w", err)
	}
	if err := json.Unmarshal([]byte(activeHours), &log.ActiveHours); err != nil {
		return nil, fmt.Errorf("unmarshaling active_hours: %w", err)
	}

	return &log, nil
}

func orEmptyIntMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

func orEmptyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
