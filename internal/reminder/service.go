package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultStoreTimeout bounds a single store call when no timeout is configured.
const DefaultStoreTimeout = 15 * time.Second

// Service owns the reminder lifecycle. It keeps no reminders in memory:
// every call re-reads the store.
type Service struct {
	store        Store
	clock        Clock
	storeTimeout time.Duration
}

// NewService creates a service over store. A non-positive storeTimeout
// falls back to DefaultStoreTimeout.
func NewService(store Store, clock Clock, storeTimeout time.Duration) *Service {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &Service{
		store:        store,
		clock:        clock,
		storeTimeout: storeTimeout,
	}
}

// Now returns the current civil time in the service's zone.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Create validates the input and appends a pending reminder for today.
// start and end are "HH:MM" in the service's zone.
func (s *Service) Create(ctx context.Context, start, end, description string) (*Reminder, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	today := s.clock.Now()
	startAt, err := onDay(today, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrValidation, err)
	}
	endAt, err := onDay(today, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrValidation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	added, err := s.store.Append(ctx, Reminder{
		Start:       startAt,
		End:         endAt,
		Description: description,
		Status:      StatusPending,
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// ListPending returns the pending reminders in insertion order. The slice
// index plus one is the display ordinal used by Complete.
func (s *Service) ListPending(ctx context.Context) ([]Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]Reminder, 0, len(all))
	for _, r := range all {
		if r.IsPending() {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// Complete marks the ordinal-th pending reminder (1-based) as done.
func (s *Service) Complete(ctx context.Context, ordinal int) (*Reminder, error) {
	pending, err := s.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if ordinal < 1 || ordinal > len(pending) {
		return nil, fmt.Errorf("%w: %d (have %d pending)", ErrIndex, ordinal, len(pending))
	}

	target := pending[ordinal-1]

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.SetStatus(ctx, target.Position, StatusDone); err != nil {
		return nil, err
	}

	target.Status = StatusDone
	return &target, nil
}

// CheckDue reports every pending reminder whose start or end equals now at
// minute precision. A reminder whose start and end coincide yields both
// edges. Nothing is modified.
func (s *Service) CheckDue(ctx context.Context, now time.Time) ([]Due, error) {
	minute := truncateMinute(now.In(s.clock.Location()))

	pending, err := s.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	var due []Due
	for _, r := range pending {
		if r.Start.Equal(minute) {
			due = append(due, Due{Reminder: r, Edge: EdgeStart})
		}
		if r.End.Equal(minute) {
			due = append(due, Due{Reminder: r, Edge: EdgeEnd})
		}
	}
	return due, nil
}

// ResetDay removes every reminder, pending or done, and returns how many
// existed before.
func (s *Service) ResetDay(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.store.TruncateAll(ctx)
}

// onDay combines the calendar date of day with an "HH:MM" clock reading.
func onDay(day time.Time, hhmm string) (time.Time, error) {
	t, err := ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// ParseClock parses an "HH:MM" reading.
func ParseClock(hhmm string) (time.Time, error) {
	hhmm = strings.TrimSpace(hhmm)
	if hhmm == "" {
		return time.Time{}, fmt.Errorf("time is required (HH:MM)")
	}
	t, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a valid HH:MM time", hhmm)
	}
	return t, nil
}

func truncateMinute(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, t.Location())
}
