package validators

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Accepted ISO-8601 shapes. Layouts without an offset are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant parses an ISO-8601 timestamp and normalizes it to UTC.
func ParseInstant(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, httperr.Validation("missing_"+field, field+" is required.")
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, httperr.Validation("invalid_"+field, field+" must be an ISO-8601 timestamp.")
}

// ParseOptionalInstant returns nil when raw is empty.
func ParseOptionalInstant(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := ParseInstant(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
