package timezone

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Scheduling runs entirely on UTC calendar days.

const DateLayout = "2006-01-02"

// Day is 24h: UTC has no DST transitions.
const Day = 24 * time.Hour

func Now() time.Time {
	return time.Now().UTC()
}

// Today returns the current UTC date as YYYY-MM-DD.
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDay returns 00:00Z of dateISO.
func ParseDay(dateISO string) (time.Time, error) {
	if dateISO == "" {
		return time.Time{}, httperr.Validation("missing_date", "date is required (YYYY-MM-DD).")
	}
	d, err := time.ParseInLocation(DateLayout, dateISO, time.UTC)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", "date must be YYYY-MM-DD.")
	}
	return d, nil
}

// DayBounds returns [00:00Z, next 00:00Z) for the day containing t.
func DayBounds(t time.Time) interval.Interval {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return interval.New(start, start.Add(Day))
}

// ParseDayBounds combines ParseDay and DayBounds.
func ParseDayBounds(dateISO string) (interval.Interval, error) {
	d, err := ParseDay(dateISO)
	if err != nil {
		return interval.Interval{}, err
	}
	return DayBounds(d), nil
}
