package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"retreat-booking-backend/internal/db"
	"retreat-booking-backend/internal/model"
	"retreat-booking-backend/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	return gormDB
}

func day(s string) time.Time {
	d, err := model.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedUnit(t *testing.T, gormDB *gorm.DB, name string) *model.LodgingUnit {
	t.Helper()
	unit := &model.LodgingUnit{
		Name:            name,
		Location:        "Lodge",
		Type:            "private",
		Capacity:        2,
		IsActive:        true,
		IsGuestBookable: true,
	}
	require.NoError(t, gormDB.Create(unit).Error)
	return unit
}

func validRequest(unitID *int64) CreateRequest {
	return CreateRequest{
		GuestName:     "Avery Finch",
		Email:         "avery@example.com",
		Phone:         "555-0101",
		BookingType:   model.BookingTypeRetreat,
		CheckIn:       day("2024-08-01"),
		CheckOut:      day("2024-08-05"),
		Guests:        2,
		LodgingUnitID: unitID,
	}
}

func TestCreate_Validation(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"missing guest name", func(r *CreateRequest) { r.GuestName = "  " }, "guest_name"},
		{"missing email", func(r *CreateRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *CreateRequest) { r.Email = "not-an-email" }, "email"},
		{"unknown booking type", func(r *CreateRequest) { r.BookingType = "vacation" }, "booking_type"},
		{"zero-length range", func(r *CreateRequest) { r.CheckOut = r.CheckIn }, "check_out"},
		{"inverted range", func(r *CreateRequest) { r.CheckOut = day("2024-07-01") }, "check_out"},
		{"zero guests", func(r *CreateRequest) { r.Guests = 0 }, "guests"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(nil)
			tc.mutate(&req)

			_, err := svc.Create(ctx, req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.FieldErrors, tc.field)

			var count int64
			require.NoError(t, gormDB.Model(&model.Reservation{}).Count(&count).Error)
			assert.Zero(t, count, "failed validation must not persist anything")
		})
	}
}

func TestCreate_PersistsPending(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)

	unit := seedUnit(t, gormDB, "Lodge Room 1")
	reservation, err := svc.Create(context.Background(), validRequest(&unit.ID))
	require.NoError(t, err)

	assert.NotZero(t, reservation.ID)
	assert.Equal(t, model.StatusPending, reservation.Status)
	require.NotNil(t, reservation.LodgingUnitID)
	assert.Equal(t, unit.ID, *reservation.LodgingUnitID)
}

func TestCreate_UnassignedNeedsNoUnit(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)

	reservation, err := svc.Create(context.Background(), validRequest(nil))
	require.NoError(t, err)
	assert.Nil(t, reservation.LodgingUnitID)
	assert.Equal(t, model.StatusPending, reservation.Status)
}

func TestCreate_ConflictAtCommitTime(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)
	ctx := context.Background()

	unit := seedUnit(t, gormDB, "Lodge Room 1")
	first, err := svc.Create(ctx, validRequest(&unit.ID))
	require.NoError(t, err)

	// Same unit, overlapping dates: the slot is taken even though the
	// first request is still pending.
	req := validRequest(&unit.ID)
	req.CheckIn, req.CheckOut = day("2024-08-03"), day("2024-08-06")
	_, err = svc.Create(ctx, req)

	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, unit.ID, cErr.UnitID)
	assert.Equal(t, first.ID, cErr.ConflictingReservationID)

	// Adjacent dates go through.
	req = validRequest(&unit.ID)
	req.CheckIn, req.CheckOut = day("2024-08-05"), day("2024-08-07")
	_, err = svc.Create(ctx, req)
	assert.NoError(t, err)
}

func TestCreate_ConcurrentRace(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)
	unit := seedUnit(t, gormDB, "Lodge Room 1")

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(&unit.ID)
			req.GuestName = fmt.Sprintf("Racer %d", i)
			_, errs[i] = svc.Create(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent request may win the slot")
	assert.Equal(t, attempts-1, conflicts)

	var count int64
	require.NoError(t, gormDB.Model(&model.Reservation{}).
		Where("lodging_unit_id = ? AND status IN ?", unit.ID,
			[]string{model.StatusPending, model.StatusConfirmed}).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStatus_StateMachine(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)
	ctx := context.Background()

	create := func(t *testing.T) *model.Reservation {
		r, err := svc.Create(ctx, validRequest(nil))
		require.NoError(t, err)
		return r
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		r := create(t)
		updated, err := svc.UpdateStatus(ctx, r.ID, model.StatusConfirmed, "room is ready")
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, updated.Status)
		assert.Equal(t, "room is ready", updated.Notes)
	})

	t.Run("pending to rejected", func(t *testing.T) {
		r := create(t)
		updated, err := svc.UpdateStatus(ctx, r.ID, model.StatusRejected, "")
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, updated.Status)
	})

	t.Run("confirmed to cancelled", func(t *testing.T) {
		r := create(t)
		_, err := svc.UpdateStatus(ctx, r.ID, model.StatusConfirmed, "")
		require.NoError(t, err)
		updated, err := svc.UpdateStatus(ctx, r.ID, model.StatusCancelled, "guest called")
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, updated.Status)
	})

	t.Run("terminal states are closed", func(t *testing.T) {
		for _, terminal := range []string{model.StatusCancelled, model.StatusRejected} {
			r := create(t)
			_, err := svc.UpdateStatus(ctx, r.ID, terminal, "")
			require.NoError(t, err)

			for _, next := range []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusRejected} {
				_, err := svc.UpdateStatus(ctx, r.ID, next, "")
				assert.ErrorIs(t, err, ErrInvalidTransition,
					"%s -> %s must be rejected", terminal, next)
			}
		}
	})

	t.Run("confirmed cannot revert to pending", func(t *testing.T) {
		r := create(t)
		_, err := svc.UpdateStatus(ctx, r.ID, model.StatusConfirmed, "")
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, r.ID, model.StatusPending, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		r := create(t)
		_, err := svc.UpdateStatus(ctx, r.ID, "approved", "")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, 9999, model.StatusConfirmed, "")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateStatus_CancellationFreesTheSlot(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)
	ctx := context.Background()

	unit := seedUnit(t, gormDB, "Lodge Room 1")
	first, err := svc.Create(ctx, validRequest(&unit.ID))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest(&unit.ID))
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.UpdateStatus(ctx, first.ID, model.StatusCancelled, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest(&unit.ID))
	assert.NoError(t, err, "cancelled reservations must not block availability")
}

func TestAssignRoom(t *testing.T) {
	gormDB := newTestDB(t)
	svc := NewService(gormDB, nil)
	ctx := context.Background()

	t.Run("assigns a free unit", func(t *testing.T) {
		unit := seedUnit(t, gormDB, "Lodge Room 1")
		r, err := svc.Create(ctx, validRequest(nil))
		require.NoError(t, err)

		updated, err := svc.AssignRoom(ctx, r.ID, unit.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.LodgingUnitID)
		assert.Equal(t, unit.ID, *updated.LodgingUnitID)
	})

	t.Run("re-assigning the same unit is not blocked by own claim", func(t *testing.T) {
		unit := seedUnit(t, gormDB, "Lodge Room 2")
		r, err := svc.Create(ctx, validRequest(&unit.ID))
		require.NoError(t, err)

		_, err = svc.AssignRoom(ctx, r.ID, unit.ID)
		assert.NoError(t, err)
	})

	t.Run("conflict leaves the reservation unassigned", func(t *testing.T) {
		unit := seedUnit(t, gormDB, "Lodge Room 3")
		taken, err := svc.Create(ctx, validRequest(&unit.ID))
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, taken.ID, model.StatusConfirmed, "")
		require.NoError(t, err)

		r, err := svc.Create(ctx, validRequest(nil))
		require.NoError(t, err)

		_, err = svc.AssignRoom(ctx, r.ID, unit.ID)
		var cErr *ConflictError
		require.ErrorAs(t, err, &cErr)
		assert.Equal(t, taken.ID, cErr.ConflictingReservationID)

		var reloaded model.Reservation
		require.NoError(t, gormDB.First(&reloaded, r.ID).Error)
		assert.Nil(t, reloaded.LodgingUnitID, "failed assignment must leave the reservation unchanged")
	})

	t.Run("only pending reservations are assignable", func(t *testing.T) {
		unit := seedUnit(t, gormDB, "Lodge Room 4")
		r, err := svc.Create(ctx, validRequest(nil))
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, r.ID, model.StatusConfirmed, "")
		require.NoError(t, err)

		_, err = svc.AssignRoom(ctx, r.ID, unit.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown unit", func(t *testing.T) {
		r, err := svc.Create(ctx, validRequest(nil))
		require.NoError(t, err)
		_, err = svc.AssignRoom(ctx, r.ID, 9999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

type recordingNotifier struct {
	mu  sync.Mutex
	ids []int64
}

func (n *recordingNotifier) Dispatch(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
}

func TestNotifierDispatch(t *testing.T) {
	gormDB := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewService(gormDB, notifier)
	ctx := context.Background()

	r, err := svc.Create(ctx, validRequest(nil))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, r.ID, model.StatusConfirmed, "")
	require.NoError(t, err)

	assert.Equal(t, []int64{r.ID, r.ID}, notifier.ids)
}
