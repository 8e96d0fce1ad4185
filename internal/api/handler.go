package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"retreat-booking-backend/internal/availability"
	"retreat-booking-backend/internal/booking"
	"retreat-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	engine   *availability.Engine
	bookings *booking.Service
	cache    *cache.Cache
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *availability.Engine, bookings *booking.Service, respCache *cache.Cache, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		engine:   engine,
		bookings: bookings,
		cache:    respCache,
		webpush:  webpushOptions,
	}
}

// invalidateReads drops all cached read responses after a write, so
// availability queries reflect the commit immediately.
func (h *Handler) invalidateReads() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// respondError maps domain errors onto HTTP statuses. Unclassified errors
// are logged and reported as a generic failure.
func respondError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var cErr *booking.ConflictError

	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":        "validation failed",
			"field_errors": vErr.FieldErrors,
		})
	case errors.As(err, &cErr):
		body := gin.H{
			"error":     cErr.Error(),
			"unit_id":   cErr.UnitID,
			"check_in":  cErr.CheckIn.Format("2006-01-02"),
			"check_out": cErr.CheckOut.Format("2006-01-02"),
		}
		if cErr.ConflictingReservationID != 0 {
			body["conflicting_reservation_id"] = cErr.ConflictingReservationID
		}
		if cErr.BlockedDate != nil {
			body["blocked_date"] = cErr.BlockedDate.Format("2006-01-02")
		}
		c.AbortWithStatusJSON(http.StatusConflict, body)
	case errors.Is(err, booking.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
