package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/redisstore"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucCash "github.com/BruksfildServices01/barbershop-booking/internal/usecase/cash"
)

// Deps are the process-wide resources built in main.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Log    zerolog.Logger

	Audit *audit.Dispatcher

	// Optional integrations; nil disables them.
	Notifier ucAppointment.Notifier
	Avatars  *storage.AvatarStore
	Links    ucAppointment.LinkCreator

	// Now overrides the shop clock. Tests only.
	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	booking := cfg.Booking

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(metrics.Middleware())

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	cashRepo := infraRepo.NewCashGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	bookedCache := cache.NewBookedTimes(d.Redis, cfg.BookedCacheTTL)
	sessions := session.NewStore(d.Redis, cfg.SessionTTL)

	authService := auth.NewService(userRepo, sessions, cfg.JWTSecret)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, bookedCache, booking, d.Log)
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		bookedCache,
		d.Audit,
		d.Notifier,
		booking,
		d.Log,
	)
	if d.Now != nil {
		availabilityUC.SetClock(d.Now)
		createAppointmentUC.SetClock(d.Now)
	}

	transitionsUC := ucAppointment.NewTransitions(appointmentRepo, bookedCache, d.Audit, d.Log, booking.Timezone)
	queriesUC := ucAppointment.NewQueries(appointmentRepo)
	paymentLinkUC := ucAppointment.NewPaymentLink(appointmentRepo, d.Links)
	cashRegisterUC := ucCash.NewRegister(cashRepo, d.Audit, booking)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(catalogRepo, availabilityUC, createAppointmentUC)
	authHandler := handlers.NewAuthHandler(authService, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(
		queriesUC,
		createAppointmentUC,
		transitionsUC,
		availabilityUC,
		paymentLinkUC,
		booking.CancelReasons,
	)
	paymentHandler := handlers.NewPaymentHandler(queriesUC, booking.Timezone)
	cashHandler := handlers.NewCashHandler(cashRegisterUC)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, d.Avatars, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, booking.Timezone)

	// ======================================================
	// PROBES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", readiness(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		limiter := middleware.NewIPRateLimiter(cfg.PublicBookingRPS, cfg.PublicBookingBurst)

		public := api.Group("/public")
		{
			public.GET("/barbers", publicHandler.ListBarbers)
			public.GET("/barbers/:id/services", publicHandler.ListBarberServices)
			public.GET("/barbers/:id/slots", publicHandler.Slots)
			public.GET("/barbers/:id/booked-times", publicHandler.BookedTimes)
			public.GET("/dates", publicHandler.BookingDates)
			public.POST("/appointments", limiter.Middleware(), publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signin", authHandler.SignIn)

		// ------------------------------
		// STAFF (owner + employee)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(authService))
		{
			secured.POST("/auth/signout", authHandler.SignOut)
			secured.GET("/me", authHandler.Me)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/cancel-reasons", appointmentHandler.CancelReasons)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/payment", appointmentHandler.RegisterPayment)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.MarkNoShow)
			secured.POST("/appointments/:id/payment-link", appointmentHandler.PaymentLink)

			secured.GET("/stats", appointmentHandler.Stats)

			secured.GET("/payments", paymentHandler.History)
			secured.GET("/payments/export", paymentHandler.Export)

			secured.GET("/cash", cashHandler.List)
			secured.POST("/cash", cashHandler.Create)
			secured.GET("/cash/summary", cashHandler.Summary)
			secured.GET("/cash/concepts", cashHandler.QuickConcepts)

			// ------------------------------
			// OWNER ONLY
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireRole(user.RoleOwner))
			{
				owner.GET("/barbers", catalogHandler.ListBarbers)
				owner.POST("/barbers", catalogHandler.CreateBarber)
				owner.PATCH("/barbers/:id", catalogHandler.UpdateBarber)
				owner.DELETE("/barbers/:id", catalogHandler.DeactivateBarber)
				owner.POST("/barbers/:id/avatar", catalogHandler.UploadAvatar)

				owner.GET("/barbers/:id/services", catalogHandler.ListBarberServices)
				owner.GET("/barbers/:id/available-services", catalogHandler.ListAvailableServices)
				owner.POST("/barbers/:id/services", catalogHandler.AssignService)
				owner.PATCH("/barbers/:id/services/:serviceId", catalogHandler.UpdateCustomPrice)
				owner.DELETE("/barbers/:id/services/:serviceId", catalogHandler.UnassignService)

				owner.GET("/services", catalogHandler.ListServices)
				owner.POST("/services", catalogHandler.CreateService)
				owner.PATCH("/services/:id", catalogHandler.UpdateService)
				owner.DELETE("/services/:id", catalogHandler.DeactivateService)

				owner.GET("/users", authHandler.ListUsers)
				owner.POST("/users", authHandler.CreateUser)
				owner.PATCH("/users/:id/role", authHandler.ChangeRole)
				owner.DELETE("/users/:id", authHandler.DeactivateUser)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

// readiness pings the database and Redis.
func readiness(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok", "redis": "ok"}
		status := http.StatusOK

		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if err := redisstore.Ping(ctx, d.Redis); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, checks)
	}
}
