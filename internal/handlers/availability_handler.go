package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type AvailabilityHandler struct {
	create     *ucAvailability.CreateAvailability
	deactivate *ucAvailability.DeactivateAvailability
	list       *ucAvailability.ListAvailability
	slots      *ucAvailability.GenerateSlots
}

func NewAvailabilityHandler(
	create *ucAvailability.CreateAvailability,
	deactivate *ucAvailability.DeactivateAvailability,
	list *ucAvailability.ListAvailability,
	slots *ucAvailability.GenerateSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create:     create,
		deactivate: deactivate,
		list:       list,
		slots:      slots,
	}
}

type CreateAvailabilityRequest struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	ProfessionalID *uint  `json:"professionalId"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AvailabilityHandler) ListAll(c *gin.Context) {
	windows, err := h.list.All(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromAvailabilities(windows))
}

func (h *AvailabilityHandler) ListForProfessional(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	windows, err := h.list.ForProfessional(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromAvailabilities(windows))
}

// Slots serves GET /api/availability/professional/:id/slots?date&interval.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	minutes := 0
	if raw, present := c.GetQuery("interval"); present {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_interval", "interval must be a whole number of minutes.")
			return
		}
		if n > domain.MaxIntervalMinutes {
			httperr.BadRequest(c, "invalid_interval", "interval must not exceed one day (1440 minutes).")
			return
		}
		minutes = max(n, domain.MinIntervalMinutes)
	}

	day, err := h.slots.Execute(c.Request.Context(), domain.SlotInput{
		ProfessionalID:  id,
		Date:            c.Query("date"),
		IntervalMinutes: minutes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, day)
}

// ======================================================
// PROFESSIONAL / ADMIN
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	from, err := validators.ParseInstant("start", req.Start)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, err := validators.ParseInstant("end", req.End)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	professionalID := who.ID
	if who.IsAdmin() && req.ProfessionalID != nil {
		professionalID = *req.ProfessionalID
	}

	w, err := h.create.Execute(c.Request.Context(), ucAvailability.CreateAvailabilityInput{
		ActorID:        who.ID,
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAvailability(*w))
}

func (h *AvailabilityHandler) Mine(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}

	windows, err := h.list.Mine(c.Request.Context(), who.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromAvailabilities(windows))
}

func (h *AvailabilityHandler) Deactivate(c *gin.Context) {
	who, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	w, err := h.deactivate.Execute(c.Request.Context(), who, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromAvailability(*w))
}
