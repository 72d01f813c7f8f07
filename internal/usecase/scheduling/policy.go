// Package scheduling decides what an authenticated actor may do with
// appointments and derives the fields the actor's role implies.
package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type CreateRequest struct {
	UserID         *uint
	ProfessionalID *uint
	StartsAt       time.Time
	EndsAt         time.Time
}

type ListQuery struct {
	Date           string
	ProfessionalID *uint
}

type Policy struct {
	create     *appointment.CreateAppointment
	cancel     *appointment.CancelAppointment
	reschedule *appointment.RescheduleAppointment
	list       *appointment.ListAppointments
}

func NewPolicy(
	create *appointment.CreateAppointment,
	cancel *appointment.CancelAppointment,
	reschedule *appointment.RescheduleAppointment,
	list *appointment.ListAppointments,
) *Policy {
	return &Policy{
		create:     create,
		cancel:     cancel,
		reschedule: reschedule,
		list:       list,
	}
}

// ======================================================
// CREATE
// ======================================================

func (p *Policy) Create(
	ctx context.Context,
	who actor.Actor,
	req CreateRequest,
) (*models.Appointment, error) {

	in := appointment.CreateAppointmentInput{
		ActorID:  who.ID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}

	switch who.Role {
	case actor.RoleAdmin:
		in.UserID = deref(req.UserID)
		in.ProfessionalID = deref(req.ProfessionalID)

	case actor.RoleProfessional:
		if req.UserID == nil {
			return nil, httperr.Forbidden("user_required", "Professionals must say which user the appointment is for.")
		}
		in.UserID = *req.UserID
		in.ProfessionalID = who.ID
		if req.ProfessionalID != nil {
			in.ProfessionalID = *req.ProfessionalID
		}

	default:
		if req.ProfessionalID == nil {
			return nil, httperr.Validation("missing_professional_id", "professionalId is required.")
		}
		in.UserID = who.ID
		in.ProfessionalID = *req.ProfessionalID
	}

	return p.create.Execute(ctx, in)
}

// ======================================================
// READ
// ======================================================

func (p *Policy) List(
	ctx context.Context,
	who actor.Actor,
	q ListQuery,
) ([]models.Appointment, error) {

	switch who.Role {
	case actor.RoleAdmin:
		if q.Date != "" && q.ProfessionalID != nil {
			return p.list.ByProfessionalAndDate(ctx, *q.ProfessionalID, q.Date)
		}
		return p.list.All(ctx)

	case actor.RoleProfessional:
		// ParseDay rejects an empty date with missing_date.
		return p.list.ByProfessionalAndDate(ctx, who.ID, q.Date)

	default:
		if q.Date != "" {
			return p.list.ByUserAndDate(ctx, who.ID, q.Date)
		}
		return p.list.ByUser(ctx, who.ID)
	}
}

func (p *Policy) Get(
	ctx context.Context,
	who actor.Actor,
	id uint,
) (*models.Appointment, error) {
	return p.authorized(ctx, who, id)
}

// ======================================================
// MUTATIONS
// ======================================================

func (p *Policy) Cancel(
	ctx context.Context,
	who actor.Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := p.authorized(ctx, who, id)
	if err != nil {
		return nil, err
	}
	return p.cancel.Apply(ctx, who.ID, ap)
}

func (p *Policy) Reschedule(
	ctx context.Context,
	who actor.Actor,
	id uint,
	patch appointment.Patch,
) (*models.Appointment, error) {

	ap, err := p.authorized(ctx, who, id)
	if err != nil {
		return nil, err
	}
	return p.reschedule.Apply(ctx, who.ID, ap, patch)
}

// authorized loads the appointment and lets through admins and the two
// participants.
func (p *Policy) authorized(
	ctx context.Context,
	who actor.Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := p.list.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.IsAdmin() && !domain.IsParticipant(ap, who.ID) {
		return nil, httperr.Forbidden("forbidden", "You cannot act on this appointment.")
	}
	return ap, nil
}

func deref(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
