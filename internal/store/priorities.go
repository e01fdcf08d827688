package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/model"
)

const prioritiesColumns = `
	id, display_name, age_group, gender_identity, preferred_pronouns,
	pillar_importance,
	health_goals, health_baseline, health_activities,
	work_goals, work_baseline, work_activities,
	growth_goals, growth_baseline, growth_activities,
	relationships_goals, relationships_baseline, relationships_activities,
	checkin_schedule, privacy_settings, notification_preferences,
	onboarding_completed_at, last_updated_at`

// CreatePriorities inserts a new priorities row. The caller is expected
// to have checked for an existing record; a duplicate insert fails on
// the primary key.
func (s *SQLiteStore) CreatePriorities(ctx context.Context, p model.Priorities) error {
	return s.writePriorities(ctx, p, "INSERT INTO")
}

// SavePriorities writes the whole priorities row back, replacing the
// stored activity lists with the in-memory ones.
func (s *SQLiteStore) SavePriorities(ctx context.Context, p model.Priorities) error {
	return s.writePriorities(ctx, p, "INSERT OR REPLACE INTO")
}

func (s *SQLiteStore) writePriorities(ctx context.Context, p model.Priorities, verb string) error {
	importance, err := json.Marshal(orEmptyMap(p.PillarImportance))
	if err != nil {
		return fmt.Errorf("marshaling pillar_importance for %s: %w", p.ID, err)
	}

	lists := make(map[model.Pillar]string, len(model.Pillars))
	for pillar, activities := range p.AllActivities() {
		data, err := json.Marshal(orEmptyList(activities))
		if err != nil {
			return fmt.Errorf("marshaling %s activities for %s: %w", pillar, p.ID, err)
		}
		lists[pillar] = string(data)
	}

	schedule, err := json.Marshal(orEmptyAnyMap(p.CheckinSchedule))
	if err != nil {
		return fmt.Errorf("marshaling checkin_schedule for %s: %w", p.ID, err)
	}
	privacy, err := json.Marshal(orEmptyAnyMap(p.PrivacySettings))
	if err != nil {
		return fmt.Errorf("marshaling privacy_settings for %s: %w", p.ID, err)
	}
	notifications, err := json.Marshal(orEmptyAnyMap(p.NotificationPreferences))
	if err != nil {
		return fmt.Errorf("marshaling notification_preferences for %s: %w", p.ID, err)
	}

	var onboardedAt sql.NullTime
	if p.OnboardingCompletedAt != nil {
		onboardedAt = sql.NullTime{Time: p.OnboardingCompletedAt.UTC(), Valid: true}
	}

	query := verb + ` user_priorities (` + prioritiesColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		p.ID.String(), p.DisplayName, p.AgeGroup, p.GenderIdentity, p.PreferredPronouns,
		string(importance),
		p.HealthGoals, p.HealthBaseline, lists[model.PillarHealth],
		p.WorkGoals, p.WorkBaseline, lists[model.PillarWork],
		p.GrowthGoals, p.GrowthBaseline, lists[model.PillarGrowth],
		p.RelationshipsGoals, p.RelationshipsBaseline, lists[model.PillarRelationships],
		string(schedule), string(privacy), string(notifications),
		onboardedAt, p.LastUpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing priorities for %s: %w", p.ID, err)
	}

	return nil
}

// GetPriorities retrieves the priorities row for a user, or ErrNotFound.
func (s *SQLiteStore) GetPriorities(ctx context.Context, userID uuid.UUID) (*model.Priorities, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT"+prioritiesColumns+" FROM user_priorities WHERE id = ?",
		userID.String(),
	)

	var (
		p             model.Priorities
		id            string
		importance    string
		healthList    string
		workList      string
		growthList    string
		relList       string
		schedule      string
		privacy       string
		notifications string
		onboardedAt   sql.NullTime
		updatedAt     time.Time
	)

	err := row.Scan(
		&id, &p.DisplayName, &p.AgeGroup, &p.GenderIdentity, &p.PreferredPronouns,
		&importance,
		&p.HealthGoals, &p.HealthBaseline, &healthList,
		&p.WorkGoals, &p.WorkBaseline, &workList,
		&p.GrowthGoals, &p.GrowthBaseline, &growthList,
		&p.RelationshipsGoals, &p.RelationshipsBaseline, &relList,
		&schedule, &privacy, &notifications,
		&onboardedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting priorities for %s: %w", userID, err)
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing priorities id %q: %w", id, err)
	}

	if err := json.Unmarshal([]byte(importance), &p.PillarImportance); err != nil {
		return nil, fmt.Errorf("unmarshaling pillar_importance for %s: %w", userID, err)
	}
	for pillar, raw := range map[model.Pillar]string{
		model.PillarHealth:        healthList,
		model.PillarWork:          workList,
		model.PillarGrowth:        growthList,
		model.PillarRelationships: relList,
	} {
		if err := json.Unmarshal([]byte(raw), p.ActivitiesFor(pillar)); err != nil {
			return nil, fmt.Errorf("unmarshaling %s activities for %s: %w", pillar, userID, err)
		}
	}
	if err := json.Unmarshal([]byte(schedule), &p.CheckinSchedule); err != nil {
		return nil, fmt.Errorf("unmarshaling checkin_schedule for %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(privacy), &p.PrivacySettings); err != nil {
		return nil, fmt.Errorf("unmarshaling privacy_settings for %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(notifications), &p.NotificationPreferences); err != nil {
		return nil, fmt.Errorf("unmarshaling notification_preferences for %s: %w", userID, err)
	}

	if onboardedAt.Valid {
		t := onboardedAt.Time
		p.OnboardingCompletedAt = &t
	}
	p.LastUpdatedAt = updatedAt

	return &p, nil
}

// DeletePriorities removes a user's priorities row.
func (s *SQLiteStore) DeletePriorities(ctx context.Context, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_priorities WHERE id = ?", userID.String())
	if err != nil {
		return fmt.Errorf("deleting priorities for %s: %w", userID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting priorities for %s: %w", userID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PrioritiesExist reports whether a priorities row exists for the user.
func (s *SQLiteStore) PrioritiesExist(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM user_priorities WHERE id = ?", userID.String())
	if err != nil {
		return false, fmt.Errorf("checking priorities for %s: %w", userID, err)
	}
	return count > 0, nil
}

// orEmptyMap substitutes an empty map so the JSON column never holds null.
func orEmptyMap(m map[model.Pillar]float64) map[model.Pillar]float64 {
	if m == nil {
		return map[model.Pillar]float64{}
	}
	return m
}

func orEmptyAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func orEmptyList(list []model.Activity) []model.Activity {
	if list == nil {
		return []model.Activity{}
	}
	return list
}
