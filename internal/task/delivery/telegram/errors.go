package telegram

import (
	"errors"

	"task-tracker-bot/internal/task"
)

var (
	errMissingSender = errors.New("message has no sender")
	errNoMinutes     = errors.New("focus minutes missing")
)

// errorMessage returns a user-facing error string for the given error.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, task.ErrInvalidFocus):
		return msgFocusUsage
	}
	return msgInternalError
}
