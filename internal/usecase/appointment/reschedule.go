package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Patch holds the fields a reschedule may change. Nil keeps the current value.
type Patch struct {
	StartsAt       *time.Time
	EndsAt         *time.Time
	ProfessionalID *uint
	UserID         *uint
}

type RescheduleAppointment struct {
	repo  domain.Repository
	users directory.Users
	audit audit.Emitter
}

func NewRescheduleAppointment(
	repo domain.Repository,
	users directory.Users,
	audit audit.Emitter,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		users: users,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	patch Patch,
) (*models.Appointment, error) {

	ap, err := findAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}
	return uc.Apply(ctx, actorID, ap, patch)
}

// Apply moves an appointment the caller already loaded. The overlap check
// runs against the target professional and skips the appointment itself.
func (uc *RescheduleAppointment) Apply(
	ctx context.Context,
	actorID uint,
	ap *models.Appointment,
	patch Patch,
) (*models.Appointment, error) {

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Effective values
	// --------------------------------------------------
	target := *ap
	if patch.StartsAt != nil {
		target.StartsAt = patch.StartsAt.UTC()
	}
	if patch.EndsAt != nil {
		target.EndsAt = patch.EndsAt.UTC()
	}
	if err := domain.ValidateRange(target.StartsAt, target.EndsAt); err != nil {
		return nil, err
	}

	if patch.ProfessionalID != nil && *patch.ProfessionalID != ap.ProfessionalID {
		p, err := resolveUser(ctx, uc.users, *patch.ProfessionalID, "professional_not_found", "Professional does not exist.")
		if err != nil {
			return nil, err
		}
		target.ProfessionalID = p.ID
	}
	if patch.UserID != nil && *patch.UserID != ap.UserID {
		u, err := resolveUser(ctx, uc.users, *patch.UserID, "user_not_found", "User does not exist.")
		if err != nil {
			return nil, err
		}
		target.UserID = u.ID
	}

	// --------------------------------------------------
	// Overlap check + update on the target agenda
	// --------------------------------------------------
	err := uc.repo.InProfessionalTx(ctx, target.ProfessionalID, func(ctx context.Context, tx domain.Tx) error {
		cur, err := tx.FindByID(ctx, ap.ID)
		if err != nil {
			return err
		}
		if err := domain.CanReschedule(domain.Status(cur.Status)); err != nil {
			return err
		}

		conflict, err := tx.HasTimeConflict(ctx, target.ProfessionalID, target.StartsAt, target.EndsAt, cur.ID)
		if err != nil {
			return err
		}
		if conflict {
			return errTimeConflict
		}

		cur.StartsAt = target.StartsAt
		cur.EndsAt = target.EndsAt
		cur.ProfessionalID = target.ProfessionalID
		cur.UserID = target.UserID
		return tx.UpdateAppointment(ctx, cur)
	})
	if err != nil {
		if isTimeConflict(err) {
			uc.audit.Dispatch(conflictEvent(actorID, ap.ID, &target))
			return nil, errTimeConflict
		}
		return nil, notFoundOr(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   audit.ActionAppointmentRescheduled,
		Entity:   audit.EntityAppointment,
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"from": map[string]any{
				"professionalId": ap.ProfessionalID,
				"startsAt":       ap.StartsAt,
				"endsAt":         ap.EndsAt,
			},
			"to": map[string]any{
				"professionalId": target.ProfessionalID,
				"startsAt":       target.StartsAt,
				"endsAt":         target.EndsAt,
			},
		},
	})

	return findAppointment(ctx, uc.repo, ap.ID)
}
