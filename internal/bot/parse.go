package bot

import (
	"errors"
	"strings"
)

// ErrFormat means the /add arguments are not "HH:MM - HH:MM | description".
var ErrFormat = errors.New("expected HH:MM - HH:MM | description")

// ParseAdd splits /add arguments into start, end and description. Only the
// shape is checked here; the service validates the values.
func ParseAdd(args string) (start, end, description string, err error) {
	timePart, description, ok := strings.Cut(args, "|")
	if !ok {
		return "", "", "", ErrFormat
	}

	start, end, ok = strings.Cut(timePart, "-")
	if !ok {
		return "", "", "", ErrFormat
	}

	return strings.TrimSpace(start), strings.TrimSpace(end), strings.TrimSpace(description), nil
}
