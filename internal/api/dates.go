package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"retreat-booking-backend/internal/model"
)

// dateQuery parses a required YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required (YYYY-MM-DD)", name)
	}
	d, err := model.ParseDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", name, raw)
	}
	return d, nil
}

// optionalDate parses a YYYY-MM-DD string, returning nil when empty.
func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDay(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return &d, nil
}
