package availability

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAvailabilityInput struct {
	ActorID        uint
	ProfessionalID uint
	From           time.Time
	To             time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateAvailability struct {
	repo  domain.Repository
	users directory.Users
	audit audit.Emitter
}

func NewCreateAvailability(
	repo domain.Repository,
	users directory.Users,
	audit audit.Emitter,
) *CreateAvailability {
	return &CreateAvailability{
		repo:  repo,
		users: users,
		audit: audit,
	}
}

func (uc *CreateAvailability) Execute(
	ctx context.Context,
	in CreateAvailabilityInput,
) (*models.Availability, error) {

	if _, err := uc.users.GetUser(ctx, in.ProfessionalID); err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, httperr.Validation("professional_not_found", "Professional does not exist.")
		}
		return nil, err
	}

	if err := domain.ValidateRange(in.From, in.To); err != nil {
		return nil, err
	}

	w := &models.Availability{
		ProfessionalID: in.ProfessionalID,
		From:           in.From.UTC(),
		To:             in.To.UTC(),
		Active:         true,
	}

	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.ActorID),
		Action:   audit.ActionAvailabilityCreated,
		Entity:   audit.EntityAvailability,
		EntityID: audit.Ptr(w.ID),
		Metadata: map[string]any{
			"professionalId": w.ProfessionalID,
			"from":           w.From,
			"to":             w.To,
		},
	})

	return w, nil
}
