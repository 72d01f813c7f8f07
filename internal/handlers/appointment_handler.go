package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/scheduling"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	policy *scheduling.Policy
}

func NewAppointmentHandler(policy *scheduling.Policy) *AppointmentHandler {
	return &AppointmentHandler{policy: policy}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	UserID         *uint  `json:"userId"`
	ProfessionalID *uint  `json:"professionalId"`
	StartsAt       string `json:"startsAt"`
	EndsAt         string `json:"endsAt"`
}

type RescheduleAppointmentRequest struct {
	UserID         *uint   `json:"userId"`
	ProfessionalID *uint   `json:"professionalId"`
	StartsAt       *string `json:"startsAt"`
	EndsAt         *string `json:"endsAt"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	startsAt, err := validators.ParseInstant("startsAt", req.StartsAt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	endsAt, err := validators.ParseInstant("endsAt", req.EndsAt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.policy.Create(c.Request.Context(), who, scheduling.CreateRequest{
		UserID:         req.UserID,
		ProfessionalID: req.ProfessionalID,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

// ======================================================
// READ
// ======================================================

// List serves GET /api/appointments?date=YYYY-MM-DD&professionalId=N.
func (h *AppointmentHandler) List(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}

	professionalID, ok := optionalQueryID(c, "professionalId")
	if !ok {
		return
	}

	apps, err := h.policy.List(c.Request.Context(), who, scheduling.ListQuery{
		Date:           c.Query("date"),
		ProfessionalID: professionalID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.policy.Get(c.Request.Context(), who, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.policy.Cancel(c.Request.Context(), who, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	startsAt, err := validators.ParseOptionalInstant("startsAt", req.StartsAt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	endsAt, err := validators.ParseOptionalInstant("endsAt", req.EndsAt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.policy.Reschedule(c.Request.Context(), who, id, appointment.Patch{
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		ProfessionalID: req.ProfessionalID,
		UserID:         req.UserID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}
