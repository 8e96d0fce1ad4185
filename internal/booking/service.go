package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"retreat-booking-backend/internal/availability"
	"retreat-booking-backend/internal/model"
	"retreat-booking-backend/internal/store"
)

// Notifier dispatches a staff alert for a reservation. The notification
// worker pool satisfies this; a nil notifier disables alerts.
type Notifier interface {
	Dispatch(reservationID int64)
}

// Service orchestrates reservation creation, status transitions, and room
// assignment, consulting the availability engine before every commit.
type Service struct {
	db       *gorm.DB
	locks    *unitLocks
	notifier Notifier
}

// NewService creates a booking workflow service.
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{
		db:       db,
		locks:    newUnitLocks(),
		notifier: notifier,
	}
}

// CreateRequest carries the fields of a new booking request. Free-text
// fields arrive already length-bounded from the presentation layer; date,
// guest, and type invariants are re-validated here regardless.
type CreateRequest struct {
	GuestName       string
	Email           string
	Phone           string
	BookingType     string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	LodgingUnitID   *int64
	Notes           string
	SpecialRequests string
}

func (r *CreateRequest) validate() error {
	v := &ValidationError{}
	if strings.TrimSpace(r.GuestName) == "" {
		v.add("guest_name", "guest name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		v.add("email", "email is required")
	} else if !strings.Contains(r.Email, "@") {
		v.add("email", "email is malformed")
	}
	if !model.ValidBookingTypes[r.BookingType] {
		v.add("booking_type", fmt.Sprintf("unknown booking type %q", r.BookingType))
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		v.add("check_in", "check-in and check-out dates are required")
	} else if !model.Day(r.CheckIn).Before(model.Day(r.CheckOut)) {
		v.add("check_out", "check-out must be after check-in")
	}
	if r.Guests < 1 {
		v.add("guests", "guest count must be at least 1")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}

// Create validates and persists a new booking request in pending status.
// When a unit is requested, availability is re-checked at commit time inside
// the unit's critical section; a unit that became unavailable since the UI
// showed it as free yields a conflict, not a double booking.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		GuestName:       strings.TrimSpace(req.GuestName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		BookingType:     req.BookingType,
		CheckIn:         model.Day(req.CheckIn),
		CheckOut:        model.Day(req.CheckOut),
		Guests:          req.Guests,
		LodgingUnitID:   req.LodgingUnitID,
		Status:          model.StatusPending,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	}

	if req.LodgingUnitID != nil {
		unlock := s.locks.Lock(*req.LodgingUnitID)
		defer unlock()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reservation.LodgingUnitID != nil {
			result, err := availability.CheckUnitTx(tx, *reservation.LodgingUnitID,
				reservation.CheckIn, reservation.CheckOut, 0)
			if err != nil {
				return err
			}
			if !result.Available {
				return &ConflictError{
					UnitID:                   result.UnitID,
					CheckIn:                  result.CheckIn,
					CheckOut:                 result.CheckOut,
					ConflictingReservationID: result.ConflictingReservationID,
					BlockedDate:              result.BlockedDate,
				}
			}
		}
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("creating reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(reservation.ID)
	return reservation, nil
}

// allowedTransitions encodes the reservation state machine. Cancelled and
// rejected are terminal; re-opening requires a new reservation.
var allowedTransitions = map[string]map[string]bool{
	model.StatusPending: {
		model.StatusConfirmed: true,
		model.StatusRejected:  true,
		model.StatusCancelled: true,
	},
	model.StatusConfirmed: {
		model.StatusCancelled: true,
	},
	model.StatusCancelled: {},
	model.StatusRejected:  {},
}

// UpdateStatus applies a status transition. Confirming does not re-check
// availability: a unit assigned while pending already occupied the slot, so
// the flip cannot introduce a new conflict.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus, notes string) (*model.Reservation, error) {
	if _, known := allowedTransitions[newStatus]; !known {
		v := &ValidationError{}
		v.add("status", fmt.Sprintf("unknown status %q", newStatus))
		return nil, v
	}

	var reservation model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", id, store.ErrNotFound)
			}
			return fmt.Errorf("fetching reservation %d: %w", id, err)
		}

		if !allowedTransitions[reservation.Status][newStatus] {
			return fmt.Errorf("reservation %d: %s -> %s: %w",
				id, reservation.Status, newStatus, ErrInvalidTransition)
		}

		updates := map[string]any{
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating reservation %d: %w", id, err)
		}
		reservation.Status = newStatus
		if notes != "" {
			reservation.Notes = notes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(reservation.ID)
	return &reservation, nil
}

// AssignRoom links a pending reservation to a unit, re-checking availability
// for the reservation's dates while ignoring the reservation's own previous
// claim. On conflict the reservation is left unchanged.
func (s *Service) AssignRoom(ctx context.Context, reservationID, unitID int64) (*model.Reservation, error) {
	unlock := s.locks.Lock(unitID)
	defer unlock()

	var reservation model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", reservationID, store.ErrNotFound)
			}
			return fmt.Errorf("fetching reservation %d: %w", reservationID, err)
		}

		if reservation.Status != model.StatusPending {
			return fmt.Errorf("reservation %d is %s, rooms are assignable only while pending: %w",
				reservationID, reservation.Status, ErrInvalidTransition)
		}

		result, err := availability.CheckUnitTx(tx, unitID,
			reservation.CheckIn, reservation.CheckOut, reservation.ID)
		if err != nil {
			return err
		}
		if !result.Available {
			return &ConflictError{
				UnitID:                   result.UnitID,
				CheckIn:                  result.CheckIn,
				CheckOut:                 result.CheckOut,
				ConflictingReservationID: result.ConflictingReservationID,
				BlockedDate:              result.BlockedDate,
			}
		}

		updates := map[string]any{
			"lodging_unit_id": unitID,
			"updated_at":      time.Now().UTC(),
		}
		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return fmt.Errorf("assigning unit %d to reservation %d: %w", unitID, reservationID, err)
		}
		reservation.LodgingUnitID = &unitID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *Service) notify(reservationID int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(reservationID)
}
