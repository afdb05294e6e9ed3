package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store is the row-level persistence behind the service. Positions are
// assigned by the store and are only meaningful to it.
type Store interface {
	// Append adds r at the end and returns it with its assigned position.
	Append(ctx context.Context, r Reminder) (Reminder, error)
	// ListAll returns every stored reminder in insertion order.
	ListAll(ctx context.Context) ([]Reminder, error)
	// SetStatus overwrites the status of the row at position.
	SetStatus(ctx context.Context, position int64, status Status) error
	// TruncateAll removes every reminder and reports how many were removed.
	TruncateAll(ctx context.Context) (int, error)
	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrConnection, err)
}

// encodeRow lays a reminder out in the persisted column order:
// start_datetime, end_datetime, description, status.
func encodeRow(r Reminder) [4]string {
	return [4]string{
		r.Start.Format(DateTimeLayout),
		r.End.Format(DateTimeLayout),
		r.Description,
		string(r.Status),
	}
}

// decodeRow is the inverse of encodeRow. Datetimes are civil times in loc.
func decodeRow(position int64, cells [4]string, loc *time.Location) (Reminder, error) {
	start, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(cells[0]), loc)
	if err != nil {
		return Reminder{}, fmt.Errorf("row %d: bad start_datetime: %w", position, err)
	}
	end, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(cells[1]), loc)
	if err != nil {
		return Reminder{}, fmt.Errorf("row %d: bad end_datetime: %w", position, err)
	}
	status, err := ParseStatus(cells[3])
	if err != nil {
		return Reminder{}, fmt.Errorf("row %d: %w", position, err)
	}

	return Reminder{
		Position:    position,
		Start:       start,
		End:         end,
		Description: cells[2],
		Status:      status,
	}, nil
}
