package availability

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	DefaultIntervalMinutes = 15
	MinIntervalMinutes     = 5
	MaxIntervalMinutes     = 24 * 60

	slotClock = "15:04"
)

type SlotInput struct {
	ProfessionalID  uint
	Date            string // YYYY-MM-DD, UTC
	IntervalMinutes int
}

type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type SlotDay struct {
	ProfessionalID uint   `json:"professionalId"`
	Date           string `json:"date"`
	Interval       int    `json:"interval"`
	Slots          []Slot `json:"slots"`
}

// ClampInterval applies the default and keeps minutes within one day, so
// the step never overflows a time.Duration.
func ClampInterval(minutes int) int {
	switch {
	case minutes == 0:
		return DefaultIntervalMinutes
	case minutes < MinIntervalMinutes:
		return MinIntervalMinutes
	case minutes > MaxIntervalMinutes:
		return MaxIntervalMinutes
	}
	return minutes
}

func NewSlot(iv interval.Interval, available bool) Slot {
	return Slot{
		Start:     iv.Start.UTC().Format(slotClock),
		End:       iv.End.UTC().Format(slotClock),
		Available: available,
	}
}

func Window(w models.Availability) interval.Interval {
	return interval.New(w.From, w.To)
}

func ValidateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return httperr.Validation("invalid_range", "start and end are required.")
	}
	if !to.After(from) {
		return httperr.Validation("invalid_range", "end must be after start.")
	}
	return nil
}
