package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retreat-booking-backend/internal/booking"
	"retreat-booking-backend/internal/model"
)

type createReservationRequest struct {
	GuestName       string `json:"guest_name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone"`
	BookingType     string `json:"booking_type" binding:"required"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
	Guests          int    `json:"guests" binding:"required"`
	LodgingUnitID   *int64 `json:"lodging_unit_id"`
	Notes           string `json:"notes"`
	SpecialRequests string `json:"special_requests"`
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := model.ParseDay(req.CheckIn)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid check_in, expected YYYY-MM-DD"})
		return
	}
	checkOut, err := model.ParseDay(req.CheckOut)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid check_out, expected YYYY-MM-DD"})
		return
	}

	reservation, err := h.bookings.Create(c.Request.Context(), booking.CreateRequest{
		GuestName:       req.GuestName,
		Email:           req.Email,
		Phone:           req.Phone,
		BookingType:     req.BookingType,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		LodgingUnitID:   req.LodgingUnitID,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateReads()
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations handles GET /api/reservations, optionally filtered by
// ?status.
func (h *Handler) GetReservations(c *gin.Context) {
	status := c.Query("status")
	if status != "" {
		switch status {
		case model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusRejected:
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown status " + strconv.Quote(status)})
			return
		}
	}

	reservations, err := h.store.ListReservations(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservation handles GET /api/reservations/:id.
func (h *Handler) GetReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid reservation ID"})
		return
	}

	reservation, err := h.store.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateReservationStatus handles PUT /api/reservations/:id/status.
func (h *Handler) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid reservation ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.bookings.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateReads()
	c.JSON(http.StatusOK, reservation)
}

type assignRoomRequest struct {
	LodgingUnitID int64 `json:"lodging_unit_id" binding:"required"`
}

// AssignRoom handles PUT /api/reservations/:id/room.
func (h *Handler) AssignRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid reservation ID"})
		return
	}

	var req assignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.bookings.AssignRoom(c.Request.Context(), id, req.LodgingUnitID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateReads()
	c.JSON(http.StatusOK, reservation)
}
