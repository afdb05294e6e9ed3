package reminder

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a process-local Store. Positions keep increasing across
// truncations, mirroring an autoincrement key.
type MemoryStore struct {
	mu   sync.Mutex
	rows []Reminder
	next int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{next: 1}
}

func (m *MemoryStore) Append(ctx context.Context, r Reminder) (Reminder, error) {
	if err := ctx.Err(); err != nil {
		return Reminder{}, unavailable("insert reminder", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r.Position = m.next
	m.next++
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("list reminders", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Reminder, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *MemoryStore) SetStatus(ctx context.Context, position int64, status Status) error {
	if err := ctx.Err(); err != nil {
		return unavailable("update status", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rows {
		if m.rows[i].Position == position {
			m.rows[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("position %d: %w", position, ErrNotFound)
}

func (m *MemoryStore) TruncateAll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, unavailable("truncate reminders", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.rows)
	m.rows = nil
	return n, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
