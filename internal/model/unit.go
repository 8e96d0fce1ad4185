package model

import "time"

// LodgingUnit represents a physical space on the property: a room, cabin,
// or a non-bookable facility such as the community kitchen.
type LodgingUnit struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Location        string    `gorm:"size:50;index;not null" json:"location"`
	Type            string    `gorm:"size:50;not null" json:"type"`
	Capacity        int       `gorm:"not null" json:"capacity"`
	Description     string    `json:"description"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	IsGuestBookable bool      `gorm:"not null;default:true" json:"is_guest_bookable"`
	DisplayOrder    int       `gorm:"not null;default:999" json:"display_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
