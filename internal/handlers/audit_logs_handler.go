package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type AuditLogReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLogReader
}

func NewAuditLogsHandler(logs AuditLogReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List serves GET /api/audit-logs?action&entity&from&to&page&limit.
// from and to are UTC dates; to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if raw := c.Query("from"); raw != "" {
		day, err := timezone.ParseDayBounds(raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		f.From = &day.Start
	}
	if raw := c.Query("to"); raw != "" {
		day, err := timezone.ParseDayBounds(raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		f.To = &day.End
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f = f.Normalize()
	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
