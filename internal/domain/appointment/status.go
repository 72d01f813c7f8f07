package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel allows scheduled → cancelled. Cancelling twice is tolerated.
func CanCancel(current Status) error {
	switch current {
	case StatusScheduled, StatusCancelled:
		return nil
	default:
		return httperr.Validation("invalid_state", "Appointment cannot be cancelled.")
	}
}

// CanReschedule rejects moving an appointment that is no longer scheduled.
func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.Validation("invalid_state", "Cancelled appointments cannot be rescheduled.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
