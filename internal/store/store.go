package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mtran/wellness-backend/internal/model"
)

// ErrNotFound is returned when a requested row does not exist. The
// service layer maps it onto its own error taxonomy.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface for the priorities catalog and
// the per-day documents. Every mutation commits against one row (or a
// small cascade sharing a primary key) in a single transaction; embedded
// lists are written back whole.
type Store interface {
	// === Priorities catalog ===

	CreatePriorities(ctx context.Context, p model.Priorities) error
	GetPriorities(ctx context.Context, userID uuid.UUID) (*model.Priorities, error)
	SavePriorities(ctx context.Context, p model.Priorities) error
	DeletePriorities(ctx context.Context, userID uuid.UUID) error
	PrioritiesExist(ctx context.Context, userID uuid.UUID) (bool, error)

	// === Daily logs ===

	// CreateDailyLog inserts the log row and its four child rows
	// (checkin, journal, chatbot log, activity tracker) in one
	// transaction. The tracker may be pre-populated from priorities.
	CreateDailyLog(ctx context.Context, log model.DailyLog, tracker model.ActivityTracker) error
	GetDailyLog(ctx context.Context, userID uuid.UUID, date string) (*model.DailyLog, error)
	GetDailyLogsInRange(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]model.DailyLog, error)
	SaveDailyLog(ctx context.Context, log model.DailyLog) error
	DeleteDailyLog(ctx context.Context, userID uuid.UUID, date string) error

	// === Child documents (keyed by the daily log's ID) ===

	GetCheckin(ctx context.Context, logID uuid.UUID) (*model.Checkin, error)
	SaveCheckin(ctx context.Context, c model.Checkin) error

	GetJournal(ctx context.Context, logID uuid.UUID) (*model.Journal, error)
	SaveJournal(ctx context.Context, j model.Journal) error

	GetChatbotLog(ctx context.Context, logID uuid.UUID) (*model.ChatbotLog, error)
	SaveChatbotLog(ctx context.Context, c model.ChatbotLog) error

	GetTracker(ctx context.Context, logID uuid.UUID) (*model.ActivityTracker, error)
	SaveTracker(ctx context.Context, t model.ActivityTracker) error
}
