package booking

import (
	"errors"
	"fmt"
	"time"

	"retreat-booking-backend/internal/model"
)

var (
	// ErrConflict is returned when an availability race is lost or a unit
	// is already committed elsewhere. Callers should re-query availability
	// and retry with different unit or dates.
	ErrConflict = errors.New("booking: unit unavailable for requested dates")
	// ErrInvalidTransition is returned for status changes the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("booking: invalid status transition")
)

// ConflictError carries the context of a failed availability check: which
// unit, which dates, and what stood in the way.
type ConflictError struct {
	UnitID                   int64
	CheckIn                  time.Time
	CheckOut                 time.Time
	ConflictingReservationID int64
	BlockedDate              *time.Time
}

func (e *ConflictError) Error() string {
	rng := fmt.Sprintf("%s to %s", model.FormatDay(e.CheckIn), model.FormatDay(e.CheckOut))
	if e.BlockedDate != nil {
		return fmt.Sprintf("unit %d is blocked on %s within %s", e.UnitID, model.FormatDay(*e.BlockedDate), rng)
	}
	if e.ConflictingReservationID != 0 {
		return fmt.Sprintf("unit %d is held by reservation %d for %s", e.UnitID, e.ConflictingReservationID, rng)
	}
	return fmt.Sprintf("unit %d is unavailable for %s", e.UnitID, rng)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError captures field-level input problems that callers can
// surface to users. A failed validation is never partially applied.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	return "booking: validation failed"
}

// HasErrors reports whether any field-level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
