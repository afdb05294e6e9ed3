package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Status values for reminders, stored verbatim in the status column.
type Status string

const (
	StatusPending Status = "Pending"
	StatusDone    Status = "Done"
)

// ParseStatus reads a stored status cell. Matching is case-insensitive so
// hand-edited rows ("pending", " Done ") are still recognised.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Edge identifies which boundary of a reminder's window was reached.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// Layouts used for the persisted datetime cells and for user input.
const (
	DateTimeLayout = "15:04 02/01/2006"
	TimeLayout     = "15:04"
)

// Reminder is a single time-windowed task for the day.
type Reminder struct {
	// Position is the store's row handle. It is never shown to the user.
	Position    int64     `json:"-"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
}

// IsPending reports whether the reminder still awaits completion.
func (r Reminder) IsPending() bool {
	return r.Status == StatusPending
}

// Window renders the reminder's time range as "08:00-09:00".
func (r Reminder) Window() string {
	return r.Start.Format(TimeLayout) + "-" + r.End.Format(TimeLayout)
}

// String renders the reminder the way the schedule lists it.
func (r Reminder) String() string {
	return r.Window() + ": " + r.Description
}

// Due is a single notification produced by a due check.
type Due struct {
	Reminder Reminder `json:"reminder"`
	Edge     Edge     `json:"edge"`
}

// Notifier delivers a message to the single configured recipient.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
