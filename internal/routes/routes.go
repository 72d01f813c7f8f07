package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domainAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	domainAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/scheduling"
)

// Deps are the singletons the routes are built from. AuditLogs may be nil
// when no database backs the audit trail.
type Deps struct {
	Config *config.Config
	Log    *slog.Logger

	Appointments domainAppointment.Repository
	Availability domainAvailability.Repository
	Users        directory.Users

	Audit     audit.Emitter
	AuditLogs handlers.AuditLogReader
	Limiter   *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigins),
	)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	policy := scheduling.NewPolicy(
		ucAppointment.NewCreateAppointment(d.Appointments, d.Users, d.Audit),
		ucAppointment.NewCancelAppointment(d.Appointments, d.Audit),
		ucAppointment.NewRescheduleAppointment(d.Appointments, d.Users, d.Audit),
		ucAppointment.NewListAppointments(d.Appointments),
	)

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAvailability.NewCreateAvailability(d.Availability, d.Users, d.Audit),
		ucAvailability.NewDeactivateAvailability(d.Availability, d.Audit),
		ucAvailability.NewListAvailability(d.Availability),
		ucAvailability.NewGenerateSlots(d.Availability, d.Appointments, d.Config.MergeSlotWindows),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(policy)
	meHandler := handlers.NewMeHandler(d.Users)

	auth := middleware.AuthMiddleware(d.Config.JWTSecret)
	staff := middleware.RequireRoles(actor.RoleProfessional, actor.RoleAdmin)
	limited := middleware.RateLimit(d.Limiter)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		av := api.Group("/availability")
		{
			av.GET("", availabilityHandler.ListAll)
			av.GET("/professional/:id", availabilityHandler.ListForProfessional)
			av.GET("/professional/:id/slots", availabilityHandler.Slots)

			av.POST("", auth, staff, limited, availabilityHandler.Create)
			av.GET("/mine", auth, staff, availabilityHandler.Mine)
			av.DELETE("/:id", auth, staff, limited, availabilityHandler.Deactivate)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(auth)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/appointments", limited, appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.DELETE("/appointments/:id", limited, appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id", limited, appointmentHandler.Reschedule)

			if d.AuditLogs != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)
				secured.GET("/audit-logs", middleware.RequireRoles(actor.RoleAdmin), auditLogsHandler.List)
			}
		}
	}
}
