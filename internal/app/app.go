// Package app wires configuration into the reminder engine. Every binary
// builds its store, service and scheduler through here.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/notexe/remind-bot/internal/config"
	"github.com/notexe/remind-bot/internal/reminder"
	"github.com/notexe/remind-bot/internal/scheduler"
)

// Engine bundles the pieces every transport needs.
type Engine struct {
	Clock   reminder.Clock
	Store   reminder.Store
	Service *reminder.Service
}

// NewEngine opens the configured store and builds the service on top.
func NewEngine(cfg *config.Config) (*Engine, error) {
	clock, err := reminder.NewZoneClock(cfg.Clock.Timezone)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(cfg, clock)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Clock:   clock,
		Store:   store,
		Service: reminder.NewService(store, clock, cfg.Store.CallTimeout()),
	}, nil
}

// OpenStore opens the backend selected by store.driver.
func OpenStore(cfg *config.Config, clock reminder.Clock) (reminder.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return reminder.NewMemoryStore(), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Store.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		return reminder.NewSQLiteStore(cfg.Store.Path, cfg.Store.Table, clock.Location())
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// SchedulerConfig converts the config file's seconds into durations.
func SchedulerConfig(cfg *config.Config) scheduler.Config {
	return scheduler.Config{
		Interval:     cfg.Scheduler.Interval(),
		InitialDelay: cfg.Scheduler.Delay(),
		ResetSpec:    cfg.Scheduler.ResetSpec,
	}
}

// Close releases the store.
func (e *Engine) Close() error {
	return e.Store.Close()
}
