package telegram

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a request Telegram answered with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s failed: %s", e.Method, e.Description)
}

// IsParseEntitiesError reports whether Telegram rejected the message markup.
func IsParseEntitiesError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(apiErr.Description, "can't parse entities")
}
