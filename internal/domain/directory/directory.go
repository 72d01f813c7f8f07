package directory

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// Users resolves user ids owned by the identity service.
type Users interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}
