package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	"github.com/officinadeltaglio/barbershop-api/internal/config"
	"github.com/officinadeltaglio/barbershop-api/internal/handlers"
	"github.com/officinadeltaglio/barbershop-api/internal/infra/repository"
	"github.com/officinadeltaglio/barbershop-api/internal/middleware"
	"github.com/officinadeltaglio/barbershop-api/internal/notify"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	ucbooking "github.com/officinadeltaglio/barbershop-api/internal/usecase/booking"
	ucqueue "github.com/officinadeltaglio/barbershop-api/internal/usecase/queue"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	loc := timezone.Location(cfg.Timezone)

	// ------------------- wiring -------------------

	repo := repository.NewAppointmentGormRepository(db)
	auditor := audit.NewDispatcher(audit.New(db))
	notifier := notify.New(cfg)

	settings := ucbooking.Settings{
		Loc:               loc,
		SlotIntervalMin:   cfg.SlotIntervalMin,
		MinAdvanceMinutes: cfg.MinAdvanceMinutes,
		HorizonDays:       cfg.BookingHorizonDays,
		BaseURL:           cfg.PublicBaseURL,
	}

	createBooking := ucbooking.NewCreateBooking(repo, auditor, notifier, settings)
	cancelByToken := ucbooking.NewCancelByToken(repo, auditor, notifier, settings)
	availability := ucbooking.NewGetAvailability(repo, settings)
	bookingTransitions := ucbooking.NewTransitions(repo, auditor)

	checkIn := ucqueue.NewCheckIn(repo, auditor, loc)
	callNext := ucqueue.NewCallNext(repo, auditor, loc)
	queueTransitions := ucqueue.NewTransitions(repo, auditor, loc)
	queueSnapshot := ucqueue.NewSnapshot(repo, loc)

	publicHandler := handlers.NewPublicHandler(db, createBooking, cancelByToken, availability, queueSnapshot)
	appointmentHandler := handlers.NewAppointmentHandler(repo, createBooking, bookingTransitions, settings)
	queueHandler := handlers.NewQueueHandler(checkIn, callNext, queueTransitions, queueSnapshot)
	settingsHandler := handlers.NewSettingsHandler(db, auditor, loc)
	serviceHandler := handlers.NewServiceHandler(db, auditor)
	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingLimit := middleware.RateLimit(rdb, cfg.RateLimitMax,
		time.Duration(cfg.RateLimitWindowSec)*time.Second)

	// ------------------- public -------------------

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Cancellation link target, kept short because it ships in messages.
	r.GET("/cancella", publicHandler.CancelByToken)

	public := r.Group("/api/public")
	{
		public.GET("/services", publicHandler.ListServices)
		public.GET("/availability", publicHandler.Availability)
		public.POST("/appointments", bookingLimit, publicHandler.CreateAppointment)
		public.POST("/appointments/cancel", publicHandler.CancelByToken)
		public.GET("/queue", publicHandler.QueueBoard)
	}

	// ------------------- auth -------------------

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	}

	// ------------------- admin -------------------

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("/appointments", appointmentHandler.ListByDate)
		admin.POST("/appointments", appointmentHandler.Create)
		admin.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		admin.POST("/appointments/:id/complete", appointmentHandler.Complete)
		admin.POST("/appointments/:id/noshow", appointmentHandler.NoShow)

		admin.GET("/queue", queueHandler.Snapshot)
		admin.POST("/queue/checkin", queueHandler.CheckIn)
		admin.POST("/queue/next", queueHandler.CallNext)
		admin.POST("/queue/:id/complete", queueHandler.Complete)
		admin.POST("/queue/:id/leave", queueHandler.Leave)

		admin.GET("/services", serviceHandler.List)
		admin.POST("/services", serviceHandler.Create)
		admin.PUT("/services/:id", serviceHandler.Update)
		admin.DELETE("/services/:id", serviceHandler.Delete)

		admin.GET("/settings/hours", settingsHandler.GetOpeningHours)
		admin.PUT("/settings/hours", settingsHandler.PutOpeningHours)
		admin.GET("/settings/closed-days", settingsHandler.ListClosedDays)
		admin.POST("/settings/closed-days", settingsHandler.CreateClosedDay)
		admin.DELETE("/settings/closed-days/:id", settingsHandler.DeleteClosedDay)
	}
}
