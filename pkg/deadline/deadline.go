package deadline

import (
	"regexp"
	"strings"
	"time"
)

// Layout is the canonical deadline form: DD.MM.YYYY HH:MM.
const Layout = "02.01.2006 15:04"

var pattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}$`)

// Format validates text as a DD.MM.YYYY HH:MM deadline and returns its canonical form.
// For valid input the result equals the trimmed input.
func Format(text string) (string, error) {
	t, err := Parse(text, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// Parse returns the instant described by text in loc.
// A nil loc means UTC.
func Parse(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	text = strings.TrimSpace(text)
	if !pattern.MatchString(text) {
		return time.Time{}, &ValidationError{Input: text}
	}

	// time.ParseInLocation rejects out-of-range fields such as 31.02 or 24:00.
	t, err := time.ParseInLocation(Layout, text, loc)
	if err != nil {
		return time.Time{}, &ValidationError{Input: text, Err: err}
	}
	return t, nil
}
