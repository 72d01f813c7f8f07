package availability

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DeactivateAvailability struct {
	repo  domain.Repository
	audit audit.Emitter
}

func NewDeactivateAvailability(
	repo domain.Repository,
	audit audit.Emitter,
) *DeactivateAvailability {
	return &DeactivateAvailability{
		repo:  repo,
		audit: audit,
	}
}

// Execute soft-deletes a window. Only its professional or an admin may do it;
// an inactive window is returned unchanged.
func (uc *DeactivateAvailability) Execute(
	ctx context.Context,
	who actor.Actor,
	windowID uint,
) (*models.Availability, error) {

	w, err := uc.repo.FindByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("availability_not_found", "Availability window not found.")
		}
		return nil, err
	}

	if !who.IsAdmin() && who.ID != w.ProfessionalID {
		return nil, httperr.Forbidden("forbidden", "Only the owner or an admin can deactivate this window.")
	}

	if !w.Active {
		return w, nil
	}

	w.Active = false
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(who.ID),
		Action:   audit.ActionAvailabilityDeactivated,
		Entity:   audit.EntityAvailability,
		EntityID: audit.Ptr(w.ID),
	})

	return w, nil
}
