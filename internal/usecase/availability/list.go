package availability

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListAvailability struct {
	repo domain.Repository
}

func NewListAvailability(repo domain.Repository) *ListAvailability {
	return &ListAvailability{repo: repo}
}

func (uc *ListAvailability) All(ctx context.Context) ([]models.Availability, error) {
	return uc.repo.ListAllActive(ctx)
}

func (uc *ListAvailability) ForProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.Availability, error) {
	return uc.repo.ListActiveForProfessional(ctx, professionalID)
}

// Mine lists the calling professional's own active windows.
func (uc *ListAvailability) Mine(
	ctx context.Context,
	actorID uint,
) ([]models.Availability, error) {
	return uc.repo.ListActiveForProfessional(ctx, actorID)
}
