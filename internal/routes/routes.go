package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/services-marketplace/internal/audit"
	"github.com/BruksfildServices01/services-marketplace/internal/config"
	"github.com/BruksfildServices01/services-marketplace/internal/handlers"
	infraRepo "github.com/BruksfildServices01/services-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/services-marketplace/internal/middleware"
	"github.com/BruksfildServices01/services-marketplace/internal/realtime"
	ucBooking "github.com/BruksfildServices01/services-marketplace/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	hub := realtime.NewHub()

	var notifier realtime.Notifier = hub
	if cfg.RedisAddr != "" {
		bridge, err := realtime.NewRedisBridge(context.Background(), hub, cfg.RedisAddr)
		if err != nil {
			log.Printf("redis bridge unavailable (%v), realtime fica local", err)
		} else {
			notifier = bridge
		}
	}

	gateway := realtime.NewGateway(hub, cfg)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	transitionBookingUC := ucBooking.NewTransitionBooking(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		transitionBookingUC,
		getBookingUC,
		listBookingsUC,
	)

	// ======================================================
	// 🔌 REALTIME
	// ======================================================
	r.GET("/ws", gateway.Handle)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/providers/:id/services", serviceHandler.ListByProvider)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SERVICES (prestador)
			// ------------------------------
			secured.GET("/me/services", serviceHandler.ListMine)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole("ADMIN"))
			{
				admin.PATCH("/providers/:id/verify", adminHandler.VerifyProvider)
				admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}
}
