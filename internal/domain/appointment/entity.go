package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves ap to cancelled. It reports whether anything changed.
func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return false, err
	}
	if Status(ap.Status) == StatusCancelled {
		return false, nil
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true, nil
}

func Span(ap models.Appointment) interval.Interval {
	return interval.New(ap.StartsAt, ap.EndsAt)
}

// ValidateRange enforces endsAt > startsAt.
func ValidateRange(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return httperr.Validation("invalid_time", "startsAt and endsAt are required.")
	}
	if !endsAt.After(startsAt) {
		return httperr.Validation("invalid_range", "endsAt must be after startsAt.")
	}
	return nil
}

func IsParticipant(ap *models.Appointment, actorID uint) bool {
	return actorID != 0 && (ap.UserID == actorID || ap.ProfessionalID == actorID)
}
