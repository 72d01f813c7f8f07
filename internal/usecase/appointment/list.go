package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ListAppointments holds the read side of the store. Date-scoped reads
// cover one UTC day and skip cancelled appointments.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// All includes cancelled appointments, newest id first.
func (uc *ListAppointments) All(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListAll(ctx)
}

func (uc *ListAppointments) ByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return findAppointment(ctx, uc.repo, id)
}

func (uc *ListAppointments) ByProfessionalAndDate(
	ctx context.Context,
	professionalID uint,
	dateISO string,
) ([]models.Appointment, error) {

	day, err := timezone.ParseDayBounds(dateISO)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListForProfessionalStartingBetween(ctx, professionalID, day.Start, day.End)
}

func (uc *ListAppointments) ByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	return uc.repo.ListForUser(ctx, userID)
}

func (uc *ListAppointments) ByUserAndDate(
	ctx context.Context,
	userID uint,
	dateISO string,
) ([]models.Appointment, error) {

	day, err := timezone.ParseDayBounds(dateISO)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListForUserStartingBetween(ctx, userID, day.Start, day.End)
}
