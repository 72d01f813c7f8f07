package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) Create(
	ctx context.Context,
	w *models.Availability,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(w).Error
}

func (r *AvailabilityGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Availability, error) {

	var w models.Availability
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find availability %d: %w", id, err)
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) Update(
	ctx context.Context,
	w *models.Availability,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(w).Error
}

func (r *AvailabilityGormRepository) ListAllActive(
	ctx context.Context,
) ([]models.Availability, error) {

	var out []models.Availability
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("available_from DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list active availability: %w", err)
	}
	return out, nil
}

func (r *AvailabilityGormRepository) ListActiveForProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.Availability, error) {

	var out []models.Availability
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND active = ?", professionalID, true).
		Order("available_from DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list professional availability: %w", err)
	}
	return out, nil
}

func (r *AvailabilityGormRepository) ListActiveForProfessionalOnDay(
	ctx context.Context,
	professionalID uint,
	dayStart time.Time,
) ([]models.Availability, error) {

	dayEnd := dayStart.Add(24 * time.Hour)

	var out []models.Availability
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND active = ? AND available_from >= ? AND available_from < ? AND available_to > ?",
			professionalID, true, dayStart.Add(-domain.LookBack), dayEnd, dayStart,
		).
		Order("available_from ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list availability for day: %w", err)
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
