package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*60*60)

func at(hh, mm int) time.Time {
	return time.Date(2025, time.March, 14, hh, mm, 0, 0, ict)
}

func newTestService(t *testing.T) (*Service, *FixedClock, Store) {
	t.Helper()
	clock := NewFixedClock(at(7, 30))
	store := NewMemoryStore()
	return NewService(store, clock, time.Second), clock, store
}

// failingStore returns err from every operation.
type failingStore struct {
	err error
}

func (f failingStore) Append(context.Context, Reminder) (Reminder, error) { return Reminder{}, f.err }
func (f failingStore) ListAll(context.Context) ([]Reminder, error)      { return nil, f.err }
func (f failingStore) SetStatus(context.Context, int64, Status) error   { return f.err }
func (f failingStore) TruncateAll(context.Context) (int, error)         { return 0, f.err }
func (f failingStore) Close() error                                     { return nil }

func TestService_CreateThenListPending(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "08:00", "09:00", "  standup ")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, "standup", created.Description)
	assert.True(t, created.Start.Equal(at(8, 0)))
	assert.True(t, created.End.Equal(at(9, 0)))

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, *created, pending[0])
	assert.Equal(t, "08:00-09:00: standup", pending[0].String())
}

func TestService_CreateAllowsDuplicatesAndReversedWindow(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "10:00", "09:00", "stretch")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "10:00", "09:00", "stretch")
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "10:00-09:00: stretch", pending[0].String())
	assert.NotEqual(t, pending[0].Position, pending[1].Position)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		desc  string
	}{
		{"empty description", "08:00", "09:00", "   "},
		{"bad start", "8h", "09:00", "standup"},
		{"bad end", "08:00", "25:00", "standup"},
		{"missing start", "", "09:00", "standup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store := newTestService(t)

			_, err := svc.Create(context.Background(), tt.start, tt.end, tt.desc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			all, err := store.ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestService_CreateUsesClockDate(t *testing.T) {
	svc, clock, _ := newTestService(t)
	clock.Set(time.Date(2025, time.December, 31, 23, 59, 0, 0, ict))

	r, err := svc.Create(context.Background(), "07:15", "07:45", "run")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.December, 31, 7, 15, 0, 0, ict), r.Start)
	assert.Equal(t, "07:15 31/12/2025", r.Start.Format(DateTimeLayout))
}

func TestService_Complete(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	for _, d := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, "08:00", "09:00", d)
		require.NoError(t, err)
	}

	done, err := svc.Complete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "second", done.Description)
	assert.Equal(t, StatusDone, done.Status)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "first", pending[0].Description)
	assert.Equal(t, "third", pending[1].Description)

	// Ordinal 2 now refers to "third", not the completed row.
	done, err = svc.Complete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "third", done.Description)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, StatusPending, all[0].Status)
	assert.Equal(t, StatusDone, all[1].Status)
	assert.Equal(t, StatusDone, all[2].Status)
}

func TestService_CompleteOutOfRange(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "08:00", "09:00", "only")
	require.NoError(t, err)

	for _, k := range []int{-1, 0, 2, 100} {
		_, err := svc.Complete(ctx, k)
		assert.ErrorIs(t, err, ErrIndex, "ordinal %d", k)
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, StatusPending, all[0].Status)
}

func TestService_CheckDue(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	standup, err := svc.Create(ctx, "08:00", "09:00", "standup")
	require.NoError(t, err)
	instant, err := svc.Create(ctx, "09:00", "09:00", "call")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "08:00", "08:30", "finished")
	require.NoError(t, err)
	_, err = svc.Complete(ctx, 3)
	require.NoError(t, err)

	t.Run("start edge", func(t *testing.T) {
		due, err := svc.CheckDue(ctx, at(8, 0).Add(42*time.Second))
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, EdgeStart, due[0].Edge)
		assert.Equal(t, standup.Position, due[0].Reminder.Position)
	})

	t.Run("end edge and coinciding edges", func(t *testing.T) {
		due, err := svc.CheckDue(ctx, at(9, 0))
		require.NoError(t, err)
		require.Len(t, due, 3)
		assert.Equal(t, Due{Reminder: *standup, Edge: EdgeEnd}, due[0])
		assert.Equal(t, Due{Reminder: *instant, Edge: EdgeStart}, due[1])
		assert.Equal(t, Due{Reminder: *instant, Edge: EdgeEnd}, due[2])
	})

	t.Run("done reminders never fire", func(t *testing.T) {
		due, err := svc.CheckDue(ctx, at(8, 30))
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("inside window is not a match", func(t *testing.T) {
		due, err := svc.CheckDue(ctx, at(8, 1))
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("other zone is converted", func(t *testing.T) {
		due, err := svc.CheckDue(ctx, at(8, 0).UTC())
		require.NoError(t, err)
		assert.Len(t, due, 1)
	})

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, all[0].Status)
	assert.Equal(t, StatusPending, all[1].Status)
}

func TestService_ResetDay(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	for _, d := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, "08:00", "09:00", d)
		require.NoError(t, err)
	}
	_, err := svc.Complete(ctx, 1)
	require.NoError(t, err)

	n, err := svc.ResetDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	n, err = svc.ResetDay(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_EndToEnd(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "08:00", "09:00", "standup")
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "08:00-09:00: standup", pending[0].String())

	due, err := svc.CheckDue(ctx, at(8, 0))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, EdgeStart, due[0].Edge)

	done, err := svc.Complete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, done.Status)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.ResetDay(ctx)
	require.NoError(t, err)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_StoreErrorsPropagate(t *testing.T) {
	boom := unavailable("list reminders", errors.New("connection refused"))
	svc := NewService(failingStore{err: boom}, NewFixedClock(at(8, 0)), 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, "08:00", "09:00", "x")
	assert.ErrorIs(t, err, ErrConnection)

	_, err = svc.ListPending(ctx)
	assert.ErrorIs(t, err, ErrConnection)

	_, err = svc.Complete(ctx, 1)
	assert.ErrorIs(t, err, ErrConnection)

	_, err = svc.CheckDue(ctx, at(8, 0))
	assert.ErrorIs(t, err, ErrConnection)

	_, err = svc.ResetDay(ctx)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestService_CompleteAfterResetIsNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	r, err := store.Append(ctx, Reminder{Start: at(8, 0), End: at(9, 0), Description: "x", Status: StatusPending})
	require.NoError(t, err)

	_, err = store.TruncateAll(ctx)
	require.NoError(t, err)

	err = store.SetStatus(ctx, r.Position, StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)
}
