package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) withParticipants(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Professional")
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withParticipants(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find appointment %d: %w", id, err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withParticipants(ctx).
		Order("id DESC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForProfessionalStartingBetween(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withParticipants(ctx).
		Where(
			"professional_id = ? AND status <> ? AND starts_at >= ? AND starts_at < ?",
			professionalID, string(domain.StatusCancelled), start, end,
		).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list professional agenda: %w", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForProfessionalOverlapping(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "starts_at", "ends_at").
		Where(
			"professional_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			professionalID, string(domain.StatusCancelled), end, start,
		).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list busy periods: %w", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withParticipants(ctx).
		Where("user_id = ? AND status <> ?", userID, string(domain.StatusCancelled)).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list user appointments: %w", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForUserStartingBetween(
	ctx context.Context,
	userID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.withParticipants(ctx).
		Where(
			"user_id = ? AND status <> ? AND starts_at >= ? AND starts_at < ?",
			userID, string(domain.StatusCancelled), start, end,
		).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list user appointments by day: %w", err)
	}
	return apps, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

// InProfessionalTx serializes writers of one professional's agenda with a
// transaction-scoped advisory lock. The exclusion constraint created in
// db.NewDB backs this up at the storage level.
func (r *AppointmentGormRepository) InProfessionalTx(
	ctx context.Context,
	professionalID uint,
	fn func(ctx context.Context, tx domain.Tx) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfessionalAgenda(tx, professionalID); err != nil {
			return fmt.Errorf("lock agenda of professional %d: %w", professionalID, err)
		}
		return fn(ctx, appointmentTx{tx: tx})
	})
}

func lockProfessionalAgenda(tx *gorm.DB, professionalID uint) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", advisoryNamespace, int64(professionalID)).Error
}

// advisoryNamespace keeps agenda locks apart from other advisory lock users.
const advisoryNamespace = 7301

type appointmentTx struct {
	tx *gorm.DB
}

func (t appointmentTx) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock appointment %d: %w", id, err)
	}
	return &ap, nil
}

func (t appointmentTx) HasTimeConflict(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (bool, error) {

	q := t.tx.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where(
			"professional_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			professionalID, string(domain.StatusCancelled), end, start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var ids []uint
	if err := q.Limit(1).Find(&ids).Error; err != nil {
		return false, fmt.Errorf("check time conflict: %w", err)
	}
	return len(ids) > 0, nil
}

func (t appointmentTx) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return t.tx.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
}

func (t appointmentTx) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return t.tx.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
var _ domain.Tx = appointmentTx{}
