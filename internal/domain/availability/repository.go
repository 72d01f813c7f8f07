package availability

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrNotFound = errors.New("availability not found")

// LookBack widens the day query so windows opened the previous day and
// running past midnight are still found.
const LookBack = 24 * time.Hour

type Repository interface {
	Create(ctx context.Context, w *models.Availability) error

	FindByID(ctx context.Context, id uint) (*models.Availability, error)

	Update(ctx context.Context, w *models.Availability) error

	// ListAllActive and ListActiveForProfessional order by from DESC, id DESC.
	ListAllActive(ctx context.Context) ([]models.Availability, error)

	ListActiveForProfessional(
		ctx context.Context,
		professionalID uint,
	) ([]models.Availability, error)

	// ListActiveForProfessionalOnDay returns active windows intersecting
	// [dayStart, dayStart+24h), ordered by from ASC, id ASC.
	ListActiveForProfessionalOnDay(
		ctx context.Context,
		professionalID uint,
		dayStart time.Time,
	) ([]models.Availability, error)
}
