package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"retreat-booking-backend/internal/model"
)

type blockDatesRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
	Notes string `json:"notes"`
}

// BlockDates handles POST /api/units/:unit_id/blocks: removes a unit from
// service for [start, end). Idempotent per date.
func (h *Handler) BlockDates(c *gin.Context) {
	unitID, err := strconv.ParseInt(c.Param("unit_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit ID"})
		return
	}

	var req blockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := model.ParseDay(req.Start)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid start, expected YYYY-MM-DD"})
		return
	}
	end, err := model.ParseDay(req.End)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid end, expected YYYY-MM-DD"})
		return
	}
	if !start.Before(end) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}

	days, err := h.engine.BlockDates(c.Request.Context(), unitID, start, end, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateReads()
	c.JSON(http.StatusOK, gin.H{"blocked_days": days})
}

// UnblockDates handles DELETE /api/units/:unit_id/blocks?start=&end=.
func (h *Handler) UnblockDates(c *gin.Context) {
	unitID, err := strconv.ParseInt(c.Param("unit_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit ID"})
		return
	}

	start, err := dateQuery(c, "start")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := dateQuery(c, "end")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	removed, err := h.engine.UnblockDates(c.Request.Context(), unitID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateReads()
	c.JSON(http.StatusOK, gin.H{"removed_days": removed})
}

// GetBlocks handles GET /api/units/:unit_id/blocks?start=&end=.
func (h *Handler) GetBlocks(c *gin.Context) {
	unitID, err := strconv.ParseInt(c.Param("unit_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit ID"})
		return
	}

	start, err := dateQuery(c, "start")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := dateQuery(c, "end")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blocks, err := h.engine.ListBlocks(c.Request.Context(), unitID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// GetBookingSummary handles GET /api/summary for the staff dashboard.
func (h *Handler) GetBookingSummary(c *gin.Context) {
	summary, err := h.store.BookingSummary(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetActiveStays handles GET /api/stays/active: confirmed reservations
// whose date range covers today.
func (h *Handler) GetActiveStays(c *gin.Context) {
	stays, err := h.store.ActiveStays(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stays)
}
