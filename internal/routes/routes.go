package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hbollas/LashTechBooking/internal/audit"
	"github.com/Hbollas/LashTechBooking/internal/config"
	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/handlers"
	"github.com/Hbollas/LashTechBooking/internal/middleware"
	"github.com/Hbollas/LashTechBooking/internal/notify"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
	ucAppointment "github.com/Hbollas/LashTechBooking/internal/usecase/appointment"
)

// Dependencies are the long-lived collaborators built by the serve command.
type Dependencies struct {
	Config    *config.Config
	Repo      domain.Repository
	Users     handlers.UserStore
	AuditLogs handlers.AuditSearcher
	Hours     domain.BusinessHours
	Clock     timezone.Clock
	Notifier  notify.Notifier
	Audit     *audit.Dispatcher
	Limiter   middleware.Counter
	Log       *slog.Logger
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// USE CASES
	// ======================================================
	listServicesUC := ucAppointment.NewListActiveServices(deps.Repo)

	availabilityUC := ucAppointment.NewListAvailableSlots(
		deps.Repo,
		deps.Hours,
		deps.Clock,
	)

	createBookingUC := ucAppointment.NewCreateBooking(
		deps.Repo,
		deps.Hours,
		deps.Clock,
		deps.Audit,
		deps.Log,
	)

	approveUC := ucAppointment.NewApproveAppointment(
		deps.Repo,
		deps.Clock,
		deps.Hours,
		deps.Notifier,
		deps.Audit,
		deps.Log,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		deps.Repo,
		deps.Clock,
		deps.Hours,
		deps.Notifier,
		deps.Audit,
		deps.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		listServicesUC,
		availabilityUC,
		ucAppointment.NewBookAppointment(createBookingUC),
		ucAppointment.NewGetAppointment(deps.Repo),
		deps.Hours.Location(),
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewListAppointments(deps.Repo, deps.Hours),
		approveUC,
		cancelUC,
		ucAppointment.NewToggleDeposit(deps.Repo, deps.Audit),
	)

	authHandler := handlers.NewAuthHandler(
		deps.Users,
		deps.Config.JWTSecret,
		deps.Clock,
		deps.Log,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogs, deps.Hours)

	bookingLimit := middleware.RateLimit(
		deps.Limiter,
		deps.Config.RateLimitPerMinute,
		time.Minute,
		"rl:book",
		deps.Log,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", publicHandler.ListServices)
			public.GET("/services/:id/availability", publicHandler.Availability)
			public.POST("/appointments", bookingLimit, publicHandler.CreateAppointment)
			public.GET("/appointments/:id", publicHandler.GetAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(deps.Config.JWTSecret))
		{
			admin.GET("/appointments", appointmentHandler.List)
			admin.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/deposit", appointmentHandler.ToggleDeposit)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
