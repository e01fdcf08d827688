package app

import (
	"fmt"

	"github.com/mtran/wellness-backend/internal/config"
	"github.com/mtran/wellness-backend/internal/service"
	"github.com/mtran/wellness-backend/internal/store"
)

// App is the composition root: it owns the store and exposes the three
// services wired against it. Embedding hosts construct one App per
// process and route requests into the services.
type App struct {
	Config *config.AppConfig

	Priorities *service.PrioritiesService
	Days       *service.DailyLogService
	Progress   *service.ProgressService

	store *store.SQLiteStore
}

// New opens the database at the configured path, runs migrations, and
// wires the services.
func New(cfg *config.AppConfig) (*App, error) {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.Database.Path, err)
	}

	days := service.NewDailyLogService(s)
	progress := service.NewProgressService(s, days)
	progress.SetStreakWindow(cfg.Tracking.StreakWindowDays)
	return &App{
		Config:     cfg,
		Priorities: service.NewPrioritiesService(s),
		Days:       days,
		Progress:   progress,
		store:      s,
	}, nil
}

// NewFromConfigFile loads configuration from path (falling back to
// defaults when the file is absent) and builds the App.
func NewFromConfigFile(path string) (*App, error) {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Close releases the underlying database.
func (a *App) Close() error {
	return a.store.Close()
}
