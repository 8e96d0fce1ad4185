package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"retreat-booking-backend/internal/model"
)

// GetUnits handles GET /api/units. ?location filters to one area;
// ?include_inactive=true adds deactivated units for property management.
func (h *Handler) GetUnits(c *gin.Context) {
	if location := c.Query("location"); location != "" {
		units, err := h.store.ListUnitsByLocation(c.Request.Context(), location)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, units)
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	units, err := h.store.ListUnits(c.Request.Context(), !includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

// GetUnit handles GET /api/units/:unit_id.
func (h *Handler) GetUnit(c *gin.Context) {
	unitID, err := strconv.ParseInt(c.Param("unit_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit ID"})
		return
	}

	unit, err := h.store.GetUnit(c.Request.Context(), unitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

type setUnitActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetUnitActive handles PUT /api/units/:unit_id/active. Units referenced by
// reservations are deactivated, never deleted.
func (h *Handler) SetUnitActive(c *gin.Context) {
	unitID, err := strconv.ParseInt(c.Param("unit_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit ID"})
		return
	}

	var req setUnitActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetUnitActive(c.Request.Context(), unitID, *req.IsActive); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateReads()
	c.Status(http.StatusNoContent)
}

// GetAvailableUnits handles GET /api/units/available?check_in=&check_out=&guests=.
func (h *Handler) GetAvailableUnits(c *gin.Context) {
	checkIn, err := dateQuery(c, "check_in")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := dateQuery(c, "check_out")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkIn.Before(checkOut) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "check_out must be after check_in"})
		return
	}

	guests := 1
	if raw := c.Query("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil || guests < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "guests must be a positive integer"})
			return
		}
	}

	units, err := h.engine.ListAvailableUnits(c.Request.Context(), checkIn, checkOut, guests)
	if err != nil {
		respondError(c, err)
		return
	}
	if units == nil {
		units = []model.LodgingUnit{}
	}
	c.JSON(http.StatusOK, units)
}

// CheckAvailability handles GET /api/units/:unit_id/availability?check_in=&check_out=.
func (h *Handler) CheckAvailability(c *gin.Context) {
	unitID, err := strconv.ParseInt(c.Param("unit_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit ID"})
		return
	}

	checkIn, err := dateQuery(c, "check_in")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := dateQuery(c, "check_out")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkIn.Before(checkOut) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "check_out must be after check_in"})
		return
	}

	result, err := h.engine.CheckUnit(c.Request.Context(), unitID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
