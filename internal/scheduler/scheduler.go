package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/notexe/remind-bot/internal/reminder"
	"github.com/robfig/cron/v3"
)

// Config controls the two scheduler timers.
type Config struct {
	Interval     time.Duration // between due checks
	InitialDelay time.Duration // before the first due check
	ResetSpec    string        // standard 5-field cron spec in the clock's zone
}

// Scheduler polls for due reminders and resets the day on a cron schedule.
type Scheduler struct {
	service  *reminder.Service
	notifier reminder.Notifier
	clock    reminder.Clock
	config   Config
}

// New creates a Scheduler. Nothing runs until Run is called.
func New(service *reminder.Service, notifier reminder.Notifier, clock reminder.Clock, cfg Config) *Scheduler {
	return &Scheduler{
		service:  service,
		notifier: notifier,
		clock:    clock,
		config:   cfg,
	}
}

// Run blocks, polling every Interval after InitialDelay and resetting on
// ResetSpec. It exits when ctx is cancelled, after in-flight jobs finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.config.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.config.Interval)
	}

	c, err := s.newCron(ctx)
	if err != nil {
		return err
	}

	log.Printf("[scheduler] Started. Interval: %s, reset: %q (%s)",
		s.config.Interval, s.config.ResetSpec, s.clock.Location())

	c.Start()
	defer func() {
		<-c.Stop().Done()
	}()

	delay := time.NewTimer(s.config.InitialDelay)
	defer delay.Stop()

	select {
	case <-ctx.Done():
		log.Println("[scheduler] Shutting down...")
		return nil
	case <-delay.C:
		s.Poll(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] Shutting down...")
			return nil
		case <-ticker.C:
			s.Poll(ctx)
		}
	}
}

// newCron builds the reset job in the clock's zone without starting it.
func (s *Scheduler) newCron(ctx context.Context) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(s.clock.Location()),
		cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))),
	)
	if _, err := c.AddFunc(s.config.ResetSpec, func() { s.Reset(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid reset schedule %q: %w", s.config.ResetSpec, err)
	}
	return c, nil
}

// Poll runs one due check and sends a notification for every match.
// Failures are logged and dropped; the next tick starts fresh.
func (s *Scheduler) Poll(ctx context.Context) {
	defer recoverJob("poll")

	now := s.clock.Now()
	due, err := s.service.CheckDue(ctx, now)
	if err != nil {
		log.Printf("[scheduler] Error: due check failed: %v", err)
		return
	}

	for _, d := range due {
		if err := s.notifier.Notify(ctx, DueMessage(d)); err != nil {
			log.Printf("[scheduler] Error: notification for %q failed: %v", d.Reminder.Description, err)
			continue
		}
		log.Printf("[scheduler] Sent %s notification: %s", d.Edge, d.Reminder)
	}
}

// Reset clears the day's reminders and confirms to the recipient. A failed
// reset leaves the data in place until the next scheduled run.
func (s *Scheduler) Reset(ctx context.Context) {
	defer recoverJob("reset")

	n, err := s.service.ResetDay(ctx)
	if err != nil {
		log.Printf("[scheduler] Error: daily reset failed: %v", err)
		return
	}
	log.Printf("[scheduler] Daily reset removed %d reminders", n)

	if err := s.notifier.Notify(ctx, ResetMessage(n)); err != nil {
		log.Printf("[scheduler] Error: reset confirmation failed: %v", err)
	}
}

func recoverJob(name string) {
	if r := recover(); r != nil {
		log.Printf("[scheduler] Error: %s job panicked: %v", name, r)
	}
}
