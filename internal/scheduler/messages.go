package scheduler

import (
	"fmt"

	"github.com/notexe/remind-bot/internal/reminder"
)

// DueMessage is the notification text for one due edge.
func DueMessage(d reminder.Due) string {
	switch d.Edge {
	case reminder.EdgeEnd:
		return fmt.Sprintf("🏁 END: %s %s", d.Reminder.Window(), d.Reminder.Description)
	default:
		return fmt.Sprintf("⏰ START: %s %s", d.Reminder.Window(), d.Reminder.Description)
	}
}

// ResetMessage confirms the nightly cleanup.
func ResetMessage(removed int) string {
	return fmt.Sprintf("♻️ Cleared %d reminders for the new day.", removed)
}
