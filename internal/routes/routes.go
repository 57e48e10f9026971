package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/salonflow/booking-api/internal/audit"
	"github.com/salonflow/booking-api/internal/config"
	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/fixture"
	"github.com/salonflow/booking-api/internal/handlers"
	infraRepo "github.com/salonflow/booking-api/internal/infra/repository"
	"github.com/salonflow/booking-api/internal/middleware"
	"github.com/salonflow/booking-api/internal/notify"
	"github.com/salonflow/booking-api/internal/payments"
	"github.com/salonflow/booking-api/internal/storage"
	ucBooking "github.com/salonflow/booking-api/internal/usecase/booking"
	ucStats "github.com/salonflow/booking-api/internal/usecase/stats"
)

// RegisterRoutes wires the repositories, use cases and handlers onto the
// engine. In fixture mode db is nil: only the public surface is mounted,
// backed by the seeded in-memory provider.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================

	var repo domain.Repository
	var auditDispatcher *audit.Dispatcher

	if cfg.FixtureMode() {
		repo = fixture.Seeded()
		auditDispatcher = audit.NewDispatcher(audit.LogSink{})
	} else {
		repo = infraRepo.NewBookingGormRepository(db)
		auditDispatcher = audit.NewDispatcher(audit.New(db))
	}

	// Typed-nil must not reach the use case interfaces.
	var mailer ucBooking.ConfirmationSender
	if m := notify.NewMailer(cfg); m != nil {
		mailer = m
	}

	var paymentProvider ucBooking.PaymentProvider
	if p, err := payments.NewMercadoPago(cfg.MercadoPagoToken); err == nil && p != nil {
		paymentProvider = p
	}

	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES
	// ======================================================

	availabilityUC := ucBooking.NewGetAvailability(repo)

	createBookingUC := ucBooking.NewCreateBooking(
		repo,
		auditDispatcher,
		mailer,
		paymentProvider,
	)

	listBookingsUC := ucBooking.NewListBookings(repo)

	updateStatusUC := ucBooking.NewUpdateStatus(
		repo,
		auditDispatcher,
	)

	revenueUC := ucStats.NewGetRevenue(repo)

	// ======================================================
	// HANDLERS
	// ======================================================

	publicHandler := handlers.NewPublicHandler(repo, availabilityUC, createBookingUC)

	// ======================================================
	// API (JSON)
	// ======================================================

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimitMiddleware(rdb, 60, time.Minute))
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// The admin surface needs the relational store.
		if cfg.FixtureMode() {
			return
		}

		authHandler := handlers.NewAuthHandler(db, cfg)
		meHandler := handlers.NewMeHandler(db)
		businessHandler := handlers.NewBusinessHandler(db)
		serviceHandler := handlers.NewServiceHandler(db)
		employeeHandler := handlers.NewEmployeeHandler(db, uploader)
		scheduleHandler := handlers.NewScheduleHandler(db)
		clientsHandler := handlers.NewClientsHandler(db)
		auditLogsHandler := handlers.NewAuditLogsHandler(db)

		bookingHandler := handlers.NewBookingHandler(
			repo,
			createBookingUC,
			listBookingsUC,
			updateStatusUC,
		)

		statsHandler := handlers.NewStatsHandler(repo, revenueUC)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.PUT("/me/services/:id/employees", serviceHandler.AssignEmployees)

			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)
			secured.PATCH("/me/employees/:id", employeeHandler.Update)
			secured.POST("/me/employees/:id/photo", employeeHandler.UploadPhoto)

			secured.GET("/me/schedules", scheduleHandler.Get)
			secured.PUT("/me/schedules", scheduleHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/range", bookingHandler.ListByRange)
			secured.PATCH("/me/bookings/:id/status", bookingHandler.UpdateStatus)

			secured.GET("/me/clients", clientsHandler.List)
			secured.GET("/me/clients/history", clientsHandler.History)

			secured.GET("/me/stats/revenue", statsHandler.Revenue)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
