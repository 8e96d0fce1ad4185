package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"retreat-booking-backend/internal/model"
)

func seedPropertyUnit(t *testing.T, gormDB *gorm.DB) *model.LodgingUnit {
	t.Helper()
	return seedUnit(t, gormDB, model.LodgingUnit{
		Name: "Lodge Room 1", Location: "Lodge", Type: "private", Capacity: 2, IsActive: true,
	})
}

func TestNotes(t *testing.T) {
	s, gormDB := newTestStore(t)
	ctx := context.Background()
	unit := seedPropertyUnit(t, gormDB)
	other := seedUnit(t, gormDB, model.LodgingUnit{Name: "House 1", Location: "Downtown", Type: "house", Capacity: 6, IsActive: true})

	require.NoError(t, s.CreateNote(ctx, &model.PropertyNote{
		LodgingUnitID: unit.ID, NoteType: "general", Title: "Window latch", Content: "Latch sticks in cold weather",
	}))
	require.NoError(t, s.CreateNote(ctx, &model.PropertyNote{
		LodgingUnitID: other.ID, NoteType: "damage", Title: "Stained carpet", Content: "Coffee stain near the door",
	}))

	all, err := s.ListNotes(ctx, NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byUnit, err := s.ListNotes(ctx, NoteFilter{UnitID: unit.ID})
	require.NoError(t, err)
	require.Len(t, byUnit, 1)
	assert.Equal(t, "Window latch", byUnit[0].Title)

	byType, err := s.ListNotes(ctx, NoteFilter{NoteType: "damage"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, other.ID, byType[0].LodgingUnitID)
}

func TestMaintenanceTasks(t *testing.T) {
	s, gormDB := newTestStore(t)
	ctx := context.Background()
	unit := seedPropertyUnit(t, gormDB)
	today := day("2024-08-15")

	past := day("2024-08-01")
	future := day("2024-09-01")
	require.NoError(t, s.CreateMaintenanceTask(ctx, &model.MaintenanceTask{
		LodgingUnitID: unit.ID, TaskTitle: "Fix porch step", TaskType: "repair",
		Priority: model.PriorityHigh, Status: model.TaskStatusPending, ScheduledDate: &past,
	}))
	require.NoError(t, s.CreateMaintenanceTask(ctx, &model.MaintenanceTask{
		LodgingUnitID: unit.ID, TaskTitle: "Chimney sweep", TaskType: "cleaning",
		Priority: model.PriorityMedium, Status: model.TaskStatusPending, ScheduledDate: &future,
	}))

	overdue, err := s.ListMaintenanceTasks(ctx, TaskFilter{OverdueOnly: true, Today: today})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Fix porch step", overdue[0].TaskTitle)

	// Completing the overdue task drops it from the overdue view.
	status := model.TaskStatusCompleted
	cost := 120.0
	require.NoError(t, s.UpdateMaintenanceTask(ctx, overdue[0].ID, TaskUpdate{
		Status: &status, ActualCost: &cost, CompletedDate: &today,
	}))

	overdue, err = s.ListMaintenanceTasks(ctx, TaskFilter{OverdueOnly: true, Today: today})
	require.NoError(t, err)
	assert.Empty(t, overdue)

	completed, err := s.ListMaintenanceTasks(ctx, TaskFilter{Status: model.TaskStatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.NotNil(t, completed[0].ActualCost)
	assert.Equal(t, 120.0, *completed[0].ActualCost)

	assert.ErrorIs(t, s.UpdateMaintenanceTask(ctx, 9999, TaskUpdate{Status: &status}), ErrNotFound)
}

func TestTodos(t *testing.T) {
	s, gormDB := newTestStore(t)
	ctx := context.Background()
	unit := seedPropertyUnit(t, gormDB)
	today := day("2024-08-15")

	past := day("2024-08-10")
	require.NoError(t, s.CreateTodo(ctx, &model.PropertyTodo{
		LodgingUnitID: &unit.ID, Title: "Restock firewood", Category: "supplies",
		Status: model.TaskStatusPending, DueDate: &past,
	}))
	require.NoError(t, s.CreateTodo(ctx, &model.PropertyTodo{
		Title: "Order trail maps", Category: "office", Status: model.TaskStatusPending,
	}))

	overdue, err := s.ListTodos(ctx, TodoFilter{OverdueOnly: true, Today: today})
	require.NoError(t, err)
	require.Len(t, overdue, 1, "todos without a due date are never overdue")
	assert.Equal(t, "Restock firewood", overdue[0].Title)

	byCategory, err := s.ListTodos(ctx, TodoFilter{Category: "office"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Nil(t, byCategory[0].LodgingUnitID)

	done := model.TaskStatusCompleted
	now := time.Now().UTC()
	require.NoError(t, s.UpdateTodo(ctx, overdue[0].ID, TodoUpdate{Status: &done, CompletedAt: &now}))

	pending, err := s.ListTodos(ctx, TodoFilter{Status: model.TaskStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestFilesAndInspections(t *testing.T) {
	s, gormDB := newTestStore(t)
	ctx := context.Background()
	unit := seedPropertyUnit(t, gormDB)

	require.NoError(t, s.SaveFileRecord(ctx, &model.PropertyFile{
		LodgingUnitID: unit.ID, FileName: "deck.jpg", FileType: "image/jpeg",
		FileCategory: "photo", FilePath: "/files/deck.jpg", FileSize: 52013,
	}))
	require.NoError(t, s.SaveFileRecord(ctx, &model.PropertyFile{
		LodgingUnitID: unit.ID, FileName: "warranty.pdf", FileType: "application/pdf",
		FileCategory: "document", FilePath: "/files/warranty.pdf", FileSize: 8211,
	}))

	photos, err := s.ListFiles(ctx, FileFilter{UnitID: unit.ID, Category: "photo"})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "deck.jpg", photos[0].FileName)

	next := day("2024-11-01")
	require.NoError(t, s.CreateInspection(ctx, &model.PropertyInspection{
		LodgingUnitID: unit.ID, InspectionType: "seasonal", InspectionDate: day("2024-08-01"),
		InspectorName: "R. Holt", OverallRating: 4, NextInspectionDate: &next,
	}))

	inspections, err := s.ListInspections(ctx, InspectionFilter{InspectionType: "seasonal"})
	require.NoError(t, err)
	require.Len(t, inspections, 1)
	assert.Equal(t, 4, inspections[0].OverallRating)
}

func TestMaintenanceSchedules(t *testing.T) {
	s, gormDB := newTestStore(t)
	ctx := context.Background()
	unit := seedPropertyUnit(t, gormDB)
	today := day("2024-08-15")

	require.NoError(t, s.CreateMaintenanceSchedule(ctx, &model.MaintenanceSchedule{
		LodgingUnitID: unit.ID, ScheduleName: "Gutter cleaning", TaskType: "cleaning",
		Frequency: "quarterly", NextDueDate: day("2024-08-01"), IsActive: true,
	}))
	require.NoError(t, s.CreateMaintenanceSchedule(ctx, &model.MaintenanceSchedule{
		LodgingUnitID: unit.ID, ScheduleName: "Roof check", TaskType: "inspection",
		Frequency: "yearly", NextDueDate: day("2025-05-01"), IsActive: true,
	}))
	require.NoError(t, s.CreateMaintenanceSchedule(ctx, &model.MaintenanceSchedule{
		LodgingUnitID: unit.ID, ScheduleName: "Retired schedule", TaskType: "cleaning",
		Frequency: "monthly", NextDueDate: day("2024-01-01"), IsActive: false,
	}))

	all, err := s.ListMaintenanceSchedules(ctx, ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2, "inactive schedules are hidden")
	assert.Equal(t, "Gutter cleaning", all[0].ScheduleName, "soonest due first")

	overdue, err := s.ListMaintenanceSchedules(ctx, ScheduleFilter{OverdueOnly: true, Today: today})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Gutter cleaning", overdue[0].ScheduleName)
}

func TestPropertyDashboard(t *testing.T) {
	s, gormDB := newTestStore(t)
	ctx := context.Background()
	unit := seedPropertyUnit(t, gormDB)
	today := day("2024-08-15")

	past := day("2024-08-01")
	soon := day("2024-09-01")
	farOut := day("2025-03-01")

	require.NoError(t, s.CreateMaintenanceTask(ctx, &model.MaintenanceTask{
		LodgingUnitID: unit.ID, TaskTitle: "Fix porch step", TaskType: "repair",
		Status: model.TaskStatusPending, ScheduledDate: &past,
	}))
	require.NoError(t, s.CreateMaintenanceTask(ctx, &model.MaintenanceTask{
		LodgingUnitID: unit.ID, TaskTitle: "Paint trim", TaskType: "upkeep",
		Status: model.TaskStatusPending,
	}))
	require.NoError(t, s.CreateTodo(ctx, &model.PropertyTodo{
		LodgingUnitID: &unit.ID, Title: "Restock firewood", Status: model.TaskStatusPending, DueDate: &past,
	}))
	require.NoError(t, s.CreateNote(ctx, &model.PropertyNote{
		LodgingUnitID: unit.ID, NoteType: "general", Title: "Window latch", Content: "Sticks",
	}))
	require.NoError(t, s.SaveFileRecord(ctx, &model.PropertyFile{
		LodgingUnitID: unit.ID, FileName: "deck.jpg", FileType: "image/jpeg",
		FileCategory: "photo", FilePath: "/files/deck.jpg",
	}))
	require.NoError(t, s.CreateInspection(ctx, &model.PropertyInspection{
		LodgingUnitID: unit.ID, InspectionType: "seasonal", InspectionDate: past,
		NextInspectionDate: &soon,
	}))
	require.NoError(t, s.CreateInspection(ctx, &model.PropertyInspection{
		LodgingUnitID: unit.ID, InspectionType: "annual", InspectionDate: past,
		NextInspectionDate: &farOut,
	}))

	d, err := s.PropertyDashboard(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.PendingMaintenance)
	assert.Equal(t, int64(1), d.OverdueMaintenance)
	assert.Equal(t, int64(1), d.PendingTodos)
	assert.Equal(t, int64(1), d.OverdueTodos)
	assert.Equal(t, int64(1), d.RecentNotes)
	assert.Equal(t, int64(1), d.TotalFiles)
	assert.Equal(t, int64(1), d.InspectionsDueSoon, "inspections past the 30-day window are excluded")
}
