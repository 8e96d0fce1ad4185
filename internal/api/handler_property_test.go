package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retreat-booking-backend/internal/model"
	"retreat-booking-backend/internal/store"
)

func TestPropertyNoteEndpoints(t *testing.T) {
	router, gormDB := setupRouter(t)
	unit := seedUnit(t, gormDB, "Lodge Room 1", 2)

	t.Run("notes need an existing unit", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/property/notes", gin.H{
			"lodging_unit_id": 9999, "note_type": "general",
			"title": "Window latch", "content": "Sticks in cold weather",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create and list", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/property/notes", gin.H{
			"lodging_unit_id": unit.ID, "note_type": "general",
			"title": "Window latch", "content": "Sticks in cold weather",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var note model.PropertyNote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
		assert.Equal(t, model.PriorityMedium, note.Priority, "priority defaults to medium")

		w = doRequest(router, "GET", fmt.Sprintf("/api/property/notes?unit_id=%d", unit.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var notes []model.PropertyNote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
		assert.Len(t, notes, 1)
	})
}

func TestMaintenanceTaskEndpoints(t *testing.T) {
	router, gormDB := setupRouter(t)
	unit := seedUnit(t, gormDB, "Lodge Room 1", 2)

	w := doRequest(router, "POST", "/api/property/tasks", gin.H{
		"lodging_unit_id": unit.ID, "task_title": "Fix porch step",
		"task_type": "repair", "priority": "high", "scheduled_date": "2024-08-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task model.MaintenanceTask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, model.TaskStatusPending, task.Status)

	// A date well in the past shows up in the overdue view.
	w = doRequest(router, "GET", "/api/property/tasks?overdue=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []model.MaintenanceTask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)

	w = doRequest(router, "PUT", fmt.Sprintf("/api/property/tasks/%d", task.ID), gin.H{
		"status": "completed", "actual_cost": 85.5, "completed_date": "2024-08-02",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, "GET", "/api/property/tasks?overdue=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Empty(t, tasks)

	w = doRequest(router, "PUT", "/api/property/tasks/9999", gin.H{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, "POST", "/api/property/todos", gin.H{
		"title": "Order trail maps",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var todo model.PropertyTodo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todo))
	assert.Equal(t, "general", todo.Category)
	assert.Nil(t, todo.LodgingUnitID)

	w = doRequest(router, "PUT", fmt.Sprintf("/api/property/todos/%d", todo.ID), gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, "GET", "/api/property/todos?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []model.PropertyTodo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.NotNil(t, todos[0].CompletedAt, "completing a todo stamps completed_at")
}

func TestInspectionEndpoints(t *testing.T) {
	router, gormDB := setupRouter(t)
	unit := seedUnit(t, gormDB, "Lodge Room 1", 2)

	t.Run("rating bounds", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/property/inspections", gin.H{
			"lodging_unit_id": unit.ID, "inspection_type": "seasonal",
			"inspection_date": "2024-08-01", "overall_rating": 6,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create and list by type", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/property/inspections", gin.H{
			"lodging_unit_id": unit.ID, "inspection_type": "seasonal",
			"inspection_date": "2024-08-01", "overall_rating": 4,
			"inspector_name": "R. Holt", "next_inspection_date": "2024-11-01",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = doRequest(router, "GET", "/api/property/inspections?type=seasonal", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var inspections []model.PropertyInspection
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inspections))
		require.Len(t, inspections, 1)
		assert.Equal(t, 4, inspections[0].OverallRating)
	})
}

func TestScheduleAndDashboardEndpoints(t *testing.T) {
	router, gormDB := setupRouter(t)
	unit := seedUnit(t, gormDB, "Lodge Room 1", 2)

	w := doRequest(router, "POST", "/api/property/schedules", gin.H{
		"lodging_unit_id": unit.ID, "schedule_name": "Gutter cleaning",
		"task_type": "cleaning", "frequency": "quarterly", "next_due_date": "2024-08-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(router, "GET", "/api/property/schedules?overdue=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var schedules []model.MaintenanceSchedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schedules))
	require.Len(t, schedules, 1)

	w = doRequest(router, "POST", "/api/property/todos", gin.H{"title": "Restock firewood"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, "GET", "/api/property/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard store.PropertyDashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, int64(1), dashboard.PendingTodos)
}
