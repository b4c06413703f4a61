package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrInvalidInput    = errors.New("invalid task input")
	ErrInvalidDeadline = errors.New("invalid deadline")
	ErrInvalidFocus    = errors.New("invalid focus session")
)
