package model

import "time"

// PushSubscription holds a staff browser's web push subscription. Every
// subscribed device is alerted when a booking request is created or changes
// status.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
