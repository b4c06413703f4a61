package deadline

import "errors"

// MessageInvalidFormat is the user-facing text of a deadline validation failure.
const MessageInvalidFormat = "Неверный формат даты"

// ErrInvalidFormat matches every *ValidationError via errors.Is.
var ErrInvalidFormat = errors.New(MessageInvalidFormat)

// ValidationError reports a deadline that is not a real DD.MM.YYYY HH:MM date/time.
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return MessageInvalidFormat
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
