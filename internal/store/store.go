package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"retreat-booking-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// DB exposes the underlying handle for callers that need to compose
	// their own transactions around store reads.
	DB() *gorm.DB

	// Unit catalog
	ListUnits(ctx context.Context, activeOnly bool) ([]model.LodgingUnit, error)
	ListUnitsByLocation(ctx context.Context, location string) ([]model.LodgingUnit, error)
	GetUnit(ctx context.Context, id int64) (*model.LodgingUnit, error)
	SetUnitActive(ctx context.Context, id int64, active bool) error

	// Reservations
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	ListReservations(ctx context.Context, status string) ([]model.Reservation, error)

	// Reporting
	BookingSummary(ctx context.Context, today time.Time) (*BookingSummary, error)
	ActiveStays(ctx context.Context, today time.Time) ([]model.Reservation, error)

	PropertyStore
}

// BookingSummary holds dashboard statistics for the staff overview page.
type BookingSummary struct {
	TotalUnits         int64 `json:"total_units"`
	PendingRequests    int64 `json:"pending_requests"`
	ConfirmedThisMonth int64 `json:"confirmed_this_month"`
	CurrentOccupancy   int64 `json:"current_occupancy"`
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListUnits returns lodging units ordered for presentation.
func (s *gormStore) ListUnits(ctx context.Context, activeOnly bool) ([]model.LodgingUnit, error) {
	q := s.db.WithContext(ctx).Order("display_order, location, name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var units []model.LodgingUnit
	if err := q.Find(&units).Error; err != nil {
		return nil, fmt.Errorf("listing lodging units: %w", err)
	}
	return units, nil
}

// ListUnitsByLocation returns active units in one location.
func (s *gormStore) ListUnitsByLocation(ctx context.Context, location string) ([]model.LodgingUnit, error) {
	var units []model.LodgingUnit
	err := s.db.WithContext(ctx).
		Where("location = ? AND is_active = ?", location, true).
		Order("display_order, name").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("listing units for location %q: %w", location, err)
	}
	return units, nil
}

func (s *gormStore) GetUnit(ctx context.Context, id int64) (*model.LodgingUnit, error) {
	var unit model.LodgingUnit
	err := s.db.WithContext(ctx).First(&unit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lodging unit %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching lodging unit %d: %w", id, err)
	}
	return &unit, nil
}

// SetUnitActive toggles a unit in or out of service. Units are never hard
// deleted once referenced by a reservation.
func (s *gormStore) SetUnitActive(ctx context.Context, id int64, active bool) error {
	res := s.db.WithContext(ctx).
		Model(&model.LodgingUnit{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("updating lodging unit %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("lodging unit %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *gormStore) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	var r model.Reservation
	err := s.db.WithContext(ctx).Preload("LodgingUnit").First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching reservation %d: %w", id, err)
	}
	return &r, nil
}

// ListReservations returns booking requests newest first, optionally
// filtered by status. Historical reservations keep their unit link even if
// the unit has been deactivated, so the join stays optional.
func (s *gormStore) ListReservations(ctx context.Context, status string) ([]model.Reservation, error) {
	q := s.db.WithContext(ctx).Preload("LodgingUnit").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var reservations []model.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	return reservations, nil
}

// BookingSummary aggregates dashboard statistics in one pass.
func (s *gormStore) BookingSummary(ctx context.Context, today time.Time) (*BookingSummary, error) {
	today = model.Day(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var summary BookingSummary
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.LodgingUnit{}).
		Where("is_active = ?", true).
		Count(&summary.TotalUnits).Error; err != nil {
		return nil, fmt.Errorf("counting units: %w", err)
	}
	if err := db.Model(&model.Reservation{}).
		Where("status = ?", model.StatusPending).
		Count(&summary.PendingRequests).Error; err != nil {
		return nil, fmt.Errorf("counting pending requests: %w", err)
	}
	if err := db.Model(&model.Reservation{}).
		Where("status = ? AND check_in >= ? AND check_in < ?", model.StatusConfirmed, monthStart, monthEnd).
		Count(&summary.ConfirmedThisMonth).Error; err != nil {
		return nil, fmt.Errorf("counting confirmed this month: %w", err)
	}
	if err := db.Model(&model.Reservation{}).
		Where("status = ? AND check_in <= ? AND check_out > ?", model.StatusConfirmed, today, today).
		Count(&summary.CurrentOccupancy).Error; err != nil {
		return nil, fmt.Errorf("counting current occupancy: %w", err)
	}

	return &summary, nil
}

// ActiveStays returns confirmed reservations whose stay covers today.
// A checkout dated today is already over: CheckOut is exclusive.
func (s *gormStore) ActiveStays(ctx context.Context, today time.Time) ([]model.Reservation, error) {
	today = model.Day(today)

	var stays []model.Reservation
	err := s.db.WithContext(ctx).
		Preload("LodgingUnit").
		Where("status = ? AND check_in <= ? AND check_out > ?", model.StatusConfirmed, today, today).
		Order("check_in").
		Find(&stays).Error
	if err != nil {
		return nil, fmt.Errorf("listing active stays: %w", err)
	}
	return stays, nil
}
