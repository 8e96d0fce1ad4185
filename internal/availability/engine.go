package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retreat-booking-backend/internal/model"
	"retreat-booking-backend/internal/store"
)

// activeStatuses are the reservation states that occupy a unit. A pending
// request blocks the slot just like a confirmed one, so two open inquiries
// can never be granted the same unit before staff have acted.
var activeStatuses = []string{model.StatusPending, model.StatusConfirmed}

// Engine answers availability questions against the reservation store and
// the per-day calendar overrides. All date ranges are half-open
// [checkIn, checkOut): the checkout day itself is never occupied.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates an availability engine on top of the given database.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Result reports the outcome of a single-unit availability check, carrying
// enough context for the caller to decide retry vs. abort.
type Result struct {
	UnitID    int64     `json:"unit_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Available bool      `json:"available"`

	// ConflictingReservationID is set when an active reservation overlaps
	// the requested range.
	ConflictingReservationID int64 `json:"conflicting_reservation_id,omitempty"`
	// BlockedDate is set when a calendar override removes a day in the
	// range from service.
	BlockedDate *time.Time `json:"blocked_date,omitempty"`
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Boundary-adjacent ranges do not overlap: a
// checkout and a check-in may share a date.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckUnit reports whether a unit is free for [checkIn, checkOut).
// The engine assumes a valid range; callers reject checkOut <= checkIn
// before getting here.
func (e *Engine) CheckUnit(ctx context.Context, unitID int64, checkIn, checkOut time.Time) (*Result, error) {
	return CheckUnitTx(e.db.WithContext(ctx), unitID, checkIn, checkOut, 0)
}

// CheckUnitTx runs the availability check on an explicit handle so callers
// can evaluate it inside their own transaction, making check-then-write
// atomic. excludeReservationID, when non-zero, ignores that reservation's
// own claim so staff can re-assign a unit to the same reservation without
// colliding with its placeholder.
func CheckUnitTx(tx *gorm.DB, unitID int64, checkIn, checkOut time.Time, excludeReservationID int64) (*Result, error) {
	checkIn, checkOut = model.Day(checkIn), model.Day(checkOut)
	result := &Result{UnitID: unitID, CheckIn: checkIn, CheckOut: checkOut}

	var unit model.LodgingUnit
	if err := tx.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lodging unit %d: %w", unitID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching lodging unit %d: %w", unitID, err)
	}

	q := tx.
		Where("lodging_unit_id = ? AND status IN ?", unitID, activeStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeReservationID != 0 {
		q = q.Where("id != ?", excludeReservationID)
	}

	var conflict model.Reservation
	err := q.Order("check_in").First(&conflict).Error
	switch {
	case err == nil:
		result.ConflictingReservationID = conflict.ID
		return result, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("checking reservations for unit %d: %w", unitID, err)
	}

	var block model.AvailabilityBlock
	err = tx.
		Where("lodging_unit_id = ? AND date >= ? AND date < ? AND is_available = ?",
			unitID, checkIn, checkOut, false).
		Order("date").
		First(&block).Error
	switch {
	case err == nil:
		blocked := block.Date
		result.BlockedDate = &blocked
		return result, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("checking calendar blocks for unit %d: %w", unitID, err)
	}

	result.Available = true
	return result, nil
}

// ListAvailableUnits returns active, guest-bookable units with capacity for
// minGuests that are free over [checkIn, checkOut), ordered by location and
// name. The whole computation runs against one transactional snapshot so a
// concurrent write cannot produce a half-updated answer.
func (e *Engine) ListAvailableUnits(ctx context.Context, checkIn, checkOut time.Time, minGuests int) ([]model.LodgingUnit, error) {
	checkIn, checkOut = model.Day(checkIn), model.Day(checkOut)
	if minGuests < 1 {
		minGuests = 1
	}

	var available []model.LodgingUnit
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []model.LodgingUnit
		if err := tx.
			Where("is_active = ? AND is_guest_bookable = ? AND capacity >= ? AND capacity > 0",
				true, true, minGuests).
			Order("location, name").
			Find(&candidates).Error; err != nil {
			return fmt.Errorf("listing candidate units: %w", err)
		}
		if len(candidates) == 0 {
			return nil
		}

		ids := make([]int64, len(candidates))
		for i, u := range candidates {
			ids[i] = u.ID
		}

		// One pass over reservations and blocks for the whole candidate set.
		var conflicts []model.Reservation
		if err := tx.
			Select("lodging_unit_id").
			Where("lodging_unit_id IN ? AND status IN ?", ids, activeStatuses).
			Where("check_in < ? AND check_out > ?", checkOut, checkIn).
			Find(&conflicts).Error; err != nil {
			return fmt.Errorf("listing overlapping reservations: %w", err)
		}

		var blocks []model.AvailabilityBlock
		if err := tx.
			Select("lodging_unit_id").
			Where("lodging_unit_id IN ? AND date >= ? AND date < ? AND is_available = ?",
				ids, checkIn, checkOut, false).
			Find(&blocks).Error; err != nil {
			return fmt.Errorf("listing calendar blocks: %w", err)
		}

		occupied := make(map[int64]bool)
		for _, r := range conflicts {
			if r.LodgingUnitID != nil {
				occupied[*r.LodgingUnitID] = true
			}
		}
		for _, b := range blocks {
			occupied[b.LodgingUnitID] = true
		}

		for _, u := range candidates {
			if !occupied[u.ID] {
				available = append(available, u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return available, nil
}

// BlockDates removes a unit from service for every date in [start, end),
// one calendar row per day. Re-blocking an already-blocked date overwrites
// its notes instead of duplicating the row. Returns the number of days
// covered.
func (e *Engine) BlockDates(ctx context.Context, unitID int64, start, end time.Time, notes string) (int, error) {
	start, end = model.Day(start), model.Day(end)
	if !start.Before(end) {
		return 0, nil
	}

	tx := e.db.WithContext(ctx)
	var unit model.LodgingUnit
	if err := tx.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("lodging unit %d: %w", unitID, store.ErrNotFound)
		}
		return 0, fmt.Errorf("fetching lodging unit %d: %w", unitID, err)
	}

	var rows []model.AvailabilityBlock
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		rows = append(rows, model.AvailabilityBlock{
			LodgingUnitID: unitID,
			Date:          d,
			IsAvailable:   false,
			Notes:         notes,
		})
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lodging_unit_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available", "notes"}),
	}).Create(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("blocking dates for unit %d: %w", unitID, err)
	}
	return len(rows), nil
}

// UnblockDates deletes calendar blocks for every date in [start, end),
// returning the unit to normal reservation-driven availability.
func (e *Engine) UnblockDates(ctx context.Context, unitID int64, start, end time.Time) (int, error) {
	start, end = model.Day(start), model.Day(end)

	res := e.db.WithContext(ctx).
		Where("lodging_unit_id = ? AND date >= ? AND date < ?", unitID, start, end).
		Delete(&model.AvailabilityBlock{})
	if res.Error != nil {
		return 0, fmt.Errorf("unblocking dates for unit %d: %w", unitID, res.Error)
	}
	return int(res.RowsAffected), nil
}

// ListBlocks returns the calendar overrides for a unit in [start, end),
// oldest first.
func (e *Engine) ListBlocks(ctx context.Context, unitID int64, start, end time.Time) ([]model.AvailabilityBlock, error) {
	var blocks []model.AvailabilityBlock
	err := e.db.WithContext(ctx).
		Where("lodging_unit_id = ? AND date >= ? AND date < ?", unitID, model.Day(start), model.Day(end)).
		Order("date").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("listing blocks for unit %d: %w", unitID, err)
	}
	return blocks, nil
}
