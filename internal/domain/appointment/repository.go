package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	// -------- Reads --------
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAll(ctx context.Context) ([]models.Appointment, error)

	// ListForProfessionalStartingBetween returns non-cancelled appointments
	// whose start falls in [start, end).
	ListForProfessionalStartingBetween(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListForProfessionalOverlapping returns non-cancelled appointments
	// intersecting [start, end).
	ListForProfessionalOverlapping(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListForUserStartingBetween(
		ctx context.Context,
		userID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- State change --------

	// InProfessionalTx runs fn in a transaction serialized per professional,
	// so the overlap check and the write happen atomically.
	InProfessionalTx(
		ctx context.Context,
		professionalID uint,
		fn func(ctx context.Context, tx Tx) error,
	) error
}

// Tx is the write side of one professional's agenda.
type Tx interface {
	// FindByID reloads an appointment and locks it until the transaction ends.
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	HasTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) (bool, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
