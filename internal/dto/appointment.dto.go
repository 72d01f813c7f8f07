package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ParticipantDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AppointmentDTO struct {
	ID             uint            `json:"id"`
	UserID         uint            `json:"userId"`
	ProfessionalID uint            `json:"professionalId"`
	StartsAt       time.Time       `json:"startsAt"`
	EndsAt         time.Time       `json:"endsAt"`
	Status         string          `json:"status"`
	CancelledAt    *time.Time      `json:"cancelledAt,omitempty"`
	User           *ParticipantDTO `json:"user,omitempty"`
	Professional   *ParticipantDTO `json:"professional,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func participant(u models.User) *ParticipantDTO {
	if u.ID == 0 {
		return nil
	}
	return &ParticipantDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:             ap.ID,
		UserID:         ap.UserID,
		ProfessionalID: ap.ProfessionalID,
		StartsAt:       ap.StartsAt.UTC(),
		EndsAt:         ap.EndsAt.UTC(),
		Status:         ap.Status,
		CancelledAt:    ap.CancelledAt,
		User:           participant(ap.User),
		Professional:   participant(ap.Professional),
		CreatedAt:      ap.CreatedAt,
		UpdatedAt:      ap.UpdatedAt,
	}
}

func FromAppointments(in []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(in))
	for _, ap := range in {
		out = append(out, FromAppointment(ap))
	}
	return out
}

type AvailabilityDTO struct {
	ID             uint      `json:"id"`
	ProfessionalID uint      `json:"professionalId"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Active         bool      `json:"active"`
}

func FromAvailability(w models.Availability) AvailabilityDTO {
	return AvailabilityDTO{
		ID:             w.ID,
		ProfessionalID: w.ProfessionalID,
		From:           w.From.UTC(),
		To:             w.To.UTC(),
		Active:         w.Active,
	}
}

func FromAvailabilities(in []models.Availability) []AvailabilityDTO {
	out := make([]AvailabilityDTO, 0, len(in))
	for _, w := range in {
		out = append(out, FromAvailability(w))
	}
	return out
}
