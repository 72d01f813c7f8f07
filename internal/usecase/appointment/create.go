package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ActorID uint

	UserID         uint
	ProfessionalID uint

	StartsAt time.Time
	EndsAt   time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	users directory.Users
	audit audit.Emitter
}

func NewCreateAppointment(
	repo domain.Repository,
	users directory.Users,
	audit audit.Emitter,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		users: users,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Participants
	// --------------------------------------------------
	user, err := resolveUser(ctx, uc.users, in.UserID, "user_not_found", "User does not exist.")
	if err != nil {
		return nil, err
	}
	professional, err := resolveUser(ctx, uc.users, in.ProfessionalID, "professional_not_found", "Professional does not exist.")
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Time range
	// --------------------------------------------------
	if err := domain.ValidateRange(in.StartsAt, in.EndsAt); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:         user.ID,
		ProfessionalID: professional.ID,
		StartsAt:       in.StartsAt.UTC(),
		EndsAt:         in.EndsAt.UTC(),
		Status:         string(domain.InitialStatus()),
	}

	// --------------------------------------------------
	// 3. Overlap check + insert, serialized per professional
	// --------------------------------------------------
	err = uc.repo.InProfessionalTx(ctx, ap.ProfessionalID, func(ctx context.Context, tx domain.Tx) error {
		conflict, err := tx.HasTimeConflict(ctx, ap.ProfessionalID, ap.StartsAt, ap.EndsAt, 0)
		if err != nil {
			return err
		}
		if conflict {
			return errTimeConflict
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if isTimeConflict(err) {
			uc.audit.Dispatch(conflictEvent(in.ActorID, 0, ap))
			return nil, errTimeConflict
		}
		return nil, err
	}

	ap.User = *user
	ap.Professional = *professional

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.ActorID),
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"userId":         ap.UserID,
			"professionalId": ap.ProfessionalID,
			"startsAt":       ap.StartsAt,
			"endsAt":         ap.EndsAt,
		},
	})

	return ap, nil
}

// --------------------------------------------------
// Shared helpers
// --------------------------------------------------

var errTimeConflict = httperr.Conflict(httperr.CodeTimeConflict, "Time range conflicts with another appointment.")

// isTimeConflict covers both the explicit overlap check and the
// database exclusion constraint.
func isTimeConflict(err error) bool {
	return httperr.IsBusiness(err, httperr.CodeTimeConflict) || httperr.IsExclusionConflict(err)
}

func conflictEvent(actorID, appointmentID uint, ap *models.Appointment) audit.Event {
	return audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   audit.ActionAppointmentConflict,
		Entity:   audit.EntityAppointment,
		EntityID: audit.Ptr(appointmentID),
		Metadata: map[string]any{
			"professionalId": ap.ProfessionalID,
			"startsAt":       ap.StartsAt,
			"endsAt":         ap.EndsAt,
		},
	}
}

func resolveUser(
	ctx context.Context,
	users directory.Users,
	id uint,
	code string,
	message string,
) (*models.User, error) {

	u, err := users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, httperr.Validation(code, message)
		}
		return nil, err
	}
	return u, nil
}
