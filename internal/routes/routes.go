package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MehnatiMazdor/appointment-ms/internal/booking"
	"github.com/MehnatiMazdor/appointment-ms/internal/cache"
	"github.com/MehnatiMazdor/appointment-ms/internal/config"
	"github.com/MehnatiMazdor/appointment-ms/internal/handlers"
	"github.com/MehnatiMazdor/appointment-ms/internal/middleware"
	"github.com/MehnatiMazdor/appointment-ms/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cal := booking.Calendar{
		ClosedWeekday: cfg.Clinic.ClosedWeekday,
		WindowSize:    cfg.Clinic.BookingWindowSize,
	}
	prefill := cache.NewPrefillCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)

	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db, cal, prefill, cfg.Clinic.PageSize)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		appointmentRoutes := private.Group("/appointments")
		{
			// Only patients book; the role gate fires before the
			// admission policy ever runs
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)

			// Listing is role-scoped inside the handler
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)

			// The booking calendar and slot list, shared with the validator
			appointmentRoutes.GET("/available-dates", appointmentHandler.GetAvailableDates)

			// Contact prefill from the requester's most recent self appointment
			appointmentRoutes.GET("/last-self", appointmentHandler.GetLastSelfAppointment)

			// Status transitions (role/state table enforced in handler)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
