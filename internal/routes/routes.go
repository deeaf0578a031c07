package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BelezaPro/agenda-core/internal/audit"
	"github.com/BelezaPro/agenda-core/internal/cache"
	"github.com/BelezaPro/agenda-core/internal/config"
	"github.com/BelezaPro/agenda-core/internal/events"
	"github.com/BelezaPro/agenda-core/internal/handlers"
	infraRepo "github.com/BelezaPro/agenda-core/internal/infra/repository"
	"github.com/BelezaPro/agenda-core/internal/middleware"
	ucAgenda "github.com/BelezaPro/agenda-core/internal/usecase/agenda"
	ucSchedule "github.com/BelezaPro/agenda-core/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	publisher *events.Publisher,
	engine *ucAgenda.Engine,
	cfg *config.Config,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	// leitura de grade passa pelo cache; admissão relê direto do banco
	cachedRules := cache.NewRulesCache(scheduleRepo, rdb, 60*time.Second)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	generateSlotsUC := ucSchedule.NewGenerateSlots(cachedRules, scheduleRepo)

	admitBookingUC := ucSchedule.NewAdmitBooking(
		scheduleRepo,
		scheduleRepo,
		engine,
		publisher,
		auditDispatcher,
	)

	transitionUC := ucSchedule.NewTransitionAppointment(
		scheduleRepo,
		scheduleRepo,
		publisher,
		auditDispatcher,
	)

	listDayUC := ucSchedule.NewListDayAgenda(scheduleRepo, scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(db, generateSlotsUC, admitBookingUC)
	botHandler := handlers.NewBotHandler(generateSlotsUC, admitBookingUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		generateSlotsUC,
		admitBookingUC,
		transitionUC,
		listDayUC,
	)

	calendarHandler := handlers.NewCalendarHandler(db, cachedRules)
	agendaPolicyHandler := handlers.NewAgendaPolicyHandler(db, engine, auditDispatcher)
	establishmentHandler := handlers.NewEstablishmentHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (canal client)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// CANAL AUTOMATIZADO (bot)
		// ------------------------------
		botAPI := api.Group("/bot")
		botAPI.Use(middleware.BotAuthMiddleware(db))
		{
			botAPI.GET("/:slug/availability", botHandler.Availability)
			botAPI.POST("/:slug/appointments", botHandler.CreateAppointment)
		}

		// ------------------------------
		// API PRIVADA (canal admin)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/establishment", establishmentHandler.Get)
			secured.PATCH("/me/establishment", establishmentHandler.Update)

			// ------------------------------
			// CALENDAR RULES
			// ------------------------------
			secured.GET("/me/business-hours", calendarHandler.GetBusinessHours)
			secured.PUT("/me/business-hours", calendarHandler.UpdateBusinessHours)

			secured.GET("/me/staff/:id/working-hours", calendarHandler.GetStaffHours)
			secured.PUT("/me/staff/:id/working-hours", calendarHandler.UpdateStaffHours)

			secured.GET("/me/time-off", calendarHandler.ListTimeOff)
			secured.POST("/me/time-off", calendarHandler.CreateTimeOff)
			secured.DELETE("/me/time-off/:id", calendarHandler.DeleteTimeOff)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/reject", appointmentHandler.Reject)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// AGENDA RELEASE POLICY
			// ------------------------------
			secured.GET("/me/agenda-policy", agendaPolicyHandler.Get)
			secured.PUT("/me/agenda-policy", agendaPolicyHandler.Update)
			secured.POST("/me/agenda-policy/recalculate", agendaPolicyHandler.Recalculate)
			secured.GET("/me/agenda-policy/releases", agendaPolicyHandler.ListReleases)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
