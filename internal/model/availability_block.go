package model

import "time"

// AvailabilityBlock is a per-day calendar override for a unit, independent
// of guest reservations. One row per (unit, date); re-blocking a date
// replaces the row rather than duplicating it.
type AvailabilityBlock struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	LodgingUnitID int64     `gorm:"not null;uniqueIndex:idx_unit_date" json:"lodging_unit_id"`
	Date          time.Time `gorm:"not null;uniqueIndex:idx_unit_date" json:"date"`
	IsAvailable   bool      `gorm:"not null;default:true" json:"is_available"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}
