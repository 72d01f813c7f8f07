package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewCancelAppointment(
	repo domain.Repository,
	audit audit.Emitter,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := findAppointment(ctx, uc.repo, appointmentID)
	if err != nil {
		return nil, err
	}
	return uc.Apply(ctx, actorID, ap)
}

// Apply cancels an appointment the caller already loaded. Cancelling a
// cancelled appointment returns it unchanged.
func (uc *CancelAppointment) Apply(
	ctx context.Context,
	actorID uint,
	ap *models.Appointment,
) (*models.Appointment, error) {

	var changed bool
	err := uc.repo.InProfessionalTx(ctx, ap.ProfessionalID, func(ctx context.Context, tx domain.Tx) error {
		cur, err := tx.FindByID(ctx, ap.ID)
		if err != nil {
			return err
		}

		changed, err = domain.Cancel(cur, timezone.Now())
		if err != nil || !changed {
			return err
		}
		return tx.UpdateAppointment(ctx, cur)
	})
	if err != nil {
		return nil, notFoundOr(err)
	}

	if changed {
		uc.audit.Dispatch(audit.Event{
			ActorID:  audit.Ptr(actorID),
			Action:   audit.ActionAppointmentCancelled,
			Entity:   audit.EntityAppointment,
			EntityID: audit.Ptr(ap.ID),
		})
	}

	return findAppointment(ctx, uc.repo, ap.ID)
}

func findAppointment(
	ctx context.Context,
	repo domain.Repository,
	id uint,
) (*models.Appointment, error) {

	ap, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return ap, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}
	return err
}
