package model

import "time"

// ReservationStatus values form a closed enum; external consumers must not
// invent new ones.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// Booking types accepted from the public form and staff tooling.
const (
	BookingTypeRefuge  = "refuge"
	BookingTypeRespite = "respite"
	BookingTypeRetreat = "retreat"
	BookingTypeStaff   = "staff"
	BookingTypeFamily  = "family"
	BookingTypeBlocked = "blocked"
)

// ValidBookingTypes is the set of accepted booking_type values.
var ValidBookingTypes = map[string]bool{
	BookingTypeRefuge:  true,
	BookingTypeRespite: true,
	BookingTypeRetreat: true,
	BookingTypeStaff:   true,
	BookingTypeFamily:  true,
	BookingTypeBlocked: true,
}

// Reservation is a guest booking request. CheckOut is exclusive: the
// checkout day itself is not occupied, so a departure and an arrival may
// share a date on the same unit.
type Reservation struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	GuestName       string    `gorm:"size:100;not null" json:"guest_name"`
	Email           string    `gorm:"size:150;not null" json:"email"`
	Phone           string    `gorm:"size:20" json:"phone"`
	BookingType     string    `gorm:"size:20;not null" json:"booking_type"`
	CheckIn         time.Time `gorm:"not null;index" json:"check_in"`
	CheckOut        time.Time `gorm:"not null" json:"check_out"`
	Guests          int       `gorm:"not null" json:"guests"`
	LodgingUnitID   *int64    `gorm:"index" json:"lodging_unit_id"`
	Status          string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	Notes           string    `json:"notes"`
	SpecialRequests string    `json:"special_requests"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Associations
	LodgingUnit *LodgingUnit `gorm:"foreignKey:LodgingUnitID" json:"lodging_unit,omitempty"`
}

// IsActive reports whether the reservation counts toward occupancy.
// Cancelled and rejected reservations remain as history but never block
// availability.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal reports whether the reservation has reached a final state.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusRejected
}
