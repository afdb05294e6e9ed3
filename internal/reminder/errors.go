package reminder

import "errors"

var (
	// ErrValidation marks user input that cannot become a reminder.
	ErrValidation = errors.New("invalid reminder")

	// ErrIndex is returned when a display ordinal is outside the pending list.
	ErrIndex = errors.New("reminder index out of range")

	// ErrNotFound is returned by a store when a position does not exist.
	ErrNotFound = errors.New("reminder not found")

	// ErrConnection wraps any failure to reach or query the backend.
	ErrConnection = errors.New("store unavailable")
)
