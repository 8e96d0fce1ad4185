package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"retreat-booking-backend/config"
	"retreat-booking-backend/internal/availability"
	"retreat-booking-backend/internal/booking"
	"retreat-booking-backend/internal/mw"
	"retreat-booking-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, engine *availability.Engine, bookings *booking.Service, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	handler := NewHandler(s, engine, bookings, cacheStore, webpushOptions)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Unit catalog and availability
		api.GET("/units", caching, handler.GetUnits)
		api.GET("/units/available", handler.GetAvailableUnits)
		api.GET("/units/:unit_id", caching, handler.GetUnit)
		api.PUT("/units/:unit_id/active", handler.SetUnitActive)
		api.GET("/units/:unit_id/availability", handler.CheckAvailability)

		// Staff date blocking
		api.GET("/units/:unit_id/blocks", handler.GetBlocks)
		api.POST("/units/:unit_id/blocks", handler.BlockDates)
		api.DELETE("/units/:unit_id/blocks", handler.UnblockDates)

		// Booking workflow
		api.POST("/reservations", handler.CreateReservation)
		api.GET("/reservations", handler.GetReservations)
		api.GET("/reservations/:id", handler.GetReservation)
		api.PUT("/reservations/:id/status", handler.UpdateReservationStatus)
		api.PUT("/reservations/:id/room", handler.AssignRoom)

		// Dashboards
		api.GET("/summary", caching, handler.GetBookingSummary)
		api.GET("/stays/active", handler.GetActiveStays)

		// Property management
		property := api.Group("/property")
		{
			property.POST("/notes", handler.CreateNote)
			property.GET("/notes", handler.GetNotes)
			property.POST("/tasks", handler.CreateMaintenanceTask)
			property.GET("/tasks", handler.GetMaintenanceTasks)
			property.PUT("/tasks/:id", handler.UpdateMaintenanceTask)
			property.POST("/todos", handler.CreateTodo)
			property.GET("/todos", handler.GetTodos)
			property.PUT("/todos/:id", handler.UpdateTodo)
			property.POST("/files", handler.CreateFileRecord)
			property.GET("/files", handler.GetFiles)
			property.POST("/inspections", handler.CreateInspection)
			property.GET("/inspections", handler.GetInspections)
			property.POST("/schedules", handler.CreateMaintenanceSchedule)
			property.GET("/schedules", handler.GetMaintenanceSchedules)
			property.GET("/dashboard", handler.GetPropertyDashboard)
		}

		// Staff push subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
