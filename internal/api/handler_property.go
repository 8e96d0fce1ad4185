package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"retreat-booking-backend/internal/model"
	"retreat-booking-backend/internal/store"
)

func unitIDQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("unit_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid unit_id"})
		return 0, false
	}
	return id, true
}

type createNoteRequest struct {
	LodgingUnitID int64  `json:"lodging_unit_id" binding:"required"`
	NoteType      string `json:"note_type" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	Priority      string `json:"priority"`
	CreatedBy     string `json:"created_by"`
}

// CreateNote handles POST /api/property/notes.
func (h *Handler) CreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetUnit(c.Request.Context(), req.LodgingUnitID); err != nil {
		respondError(c, err)
		return
	}

	note := model.PropertyNote{
		LodgingUnitID: req.LodgingUnitID,
		NoteType:      req.NoteType,
		Title:         req.Title,
		Content:       req.Content,
		Priority:      defaultPriority(req.Priority),
		CreatedBy:     req.CreatedBy,
	}
	if err := h.store.CreateNote(c.Request.Context(), &note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GetNotes handles GET /api/property/notes?unit_id=&note_type=.
func (h *Handler) GetNotes(c *gin.Context) {
	unitID, ok := unitIDQuery(c)
	if !ok {
		return
	}
	notes, err := h.store.ListNotes(c.Request.Context(), store.NoteFilter{
		UnitID:   unitID,
		NoteType: c.Query("note_type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

type createTaskRequest struct {
	LodgingUnitID int64    `json:"lodging_unit_id" binding:"required"`
	TaskTitle     string   `json:"task_title" binding:"required"`
	Description   string   `json:"description"`
	TaskType      string   `json:"task_type" binding:"required"`
	Priority      string   `json:"priority"`
	ScheduledDate string   `json:"scheduled_date"`
	EstimatedCost *float64 `json:"estimated_cost"`
	AssignedTo    string   `json:"assigned_to"`
	CreatedBy     string   `json:"created_by"`
}

// CreateMaintenanceTask handles POST /api/property/tasks.
func (h *Handler) CreateMaintenanceTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetUnit(c.Request.Context(), req.LodgingUnitID); err != nil {
		respondError(c, err)
		return
	}
	scheduled, err := optionalDate(req.ScheduledDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := model.MaintenanceTask{
		LodgingUnitID: req.LodgingUnitID,
		TaskTitle:     req.TaskTitle,
		Description:   req.Description,
		TaskType:      req.TaskType,
		Priority:      defaultPriority(req.Priority),
		Status:        model.TaskStatusPending,
		ScheduledDate: scheduled,
		EstimatedCost: req.EstimatedCost,
		AssignedTo:    req.AssignedTo,
		CreatedBy:     req.CreatedBy,
	}
	if err := h.store.CreateMaintenanceTask(c.Request.Context(), &task); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetMaintenanceTasks handles GET /api/property/tasks?unit_id=&status=&overdue=true.
func (h *Handler) GetMaintenanceTasks(c *gin.Context) {
	unitID, ok := unitIDQuery(c)
	if !ok {
		return
	}
	tasks, err := h.store.ListMaintenanceTasks(c.Request.Context(), store.TaskFilter{
		UnitID:      unitID,
		Status:      c.Query("status"),
		OverdueOnly: c.Query("overdue") == "true",
		Today:       time.Now().UTC(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Status        *string  `json:"status"`
	ActualCost    *float64 `json:"actual_cost"`
	CompletedDate string   `json:"completed_date"`
}

// UpdateMaintenanceTask handles PUT /api/property/tasks/:id.
func (h *Handler) UpdateMaintenanceTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	completed, err := optionalDate(req.CompletedDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := store.TaskUpdate{
		Status:        req.Status,
		ActualCost:    req.ActualCost,
		CompletedDate: completed,
	}
	if err := h.store.UpdateMaintenanceTask(c.Request.Context(), id, update); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createTodoRequest struct {
	LodgingUnitID *int64 `json:"lodging_unit_id"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	DueDate       string `json:"due_date"`
	Category      string `json:"category"`
	AssignedTo    string `json:"assigned_to"`
	CreatedBy     string `json:"created_by"`
}

// CreateTodo handles POST /api/property/todos. Todos are optionally tied to
// a unit.
func (h *Handler) CreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LodgingUnitID != nil {
		if _, err := h.store.GetUnit(c.Request.Context(), *req.LodgingUnitID); err != nil {
			respondError(c, err)
			return
		}
	}
	due, err := optionalDate(req.DueDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.Category
	if category == "" {
		category = "general"
	}
	todo := model.PropertyTodo{
		LodgingUnitID: req.LodgingUnitID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      defaultPriority(req.Priority),
		Status:        model.TaskStatusPending,
		DueDate:       due,
		Category:      category,
		AssignedTo:    req.AssignedTo,
		CreatedBy:     req.CreatedBy,
	}
	if err := h.store.CreateTodo(c.Request.Context(), &todo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// GetTodos handles GET /api/property/todos?unit_id=&status=&category=&overdue=true.
func (h *Handler) GetTodos(c *gin.Context) {
	unitID, ok := unitIDQuery(c)
	if !ok {
		return
	}
	todos, err := h.store.ListTodos(c.Request.Context(), store.TodoFilter{
		UnitID:      unitID,
		Status:      c.Query("status"),
		Category:    c.Query("category"),
		OverdueOnly: c.Query("overdue") == "true",
		Today:       time.Now().UTC(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

type updateTodoRequest struct {
	Status *string `json:"status"`
}

// UpdateTodo handles PUT /api/property/todos/:id. Completing a todo stamps
// completed_at.
func (h *Handler) UpdateTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid todo ID"})
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := store.TodoUpdate{Status: req.Status}
	if req.Status != nil && *req.Status == model.TaskStatusCompleted {
		now := time.Now().UTC()
		update.CompletedAt = &now
	}
	if err := h.store.UpdateTodo(c.Request.Context(), id, update); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createFileRequest struct {
	LodgingUnitID int64  `json:"lodging_unit_id" binding:"required"`
	FileName      string `json:"file_name" binding:"required"`
	FileType      string `json:"file_type" binding:"required"`
	FileCategory  string `json:"file_category" binding:"required"`
	FilePath      string `json:"file_path" binding:"required"`
	FileSize      int64  `json:"file_size"`
	Description   string `json:"description"`
	UploadedBy    string `json:"uploaded_by"`
}

// CreateFileRecord handles POST /api/property/files. Upload transport is
// handled elsewhere; this records metadata only.
func (h *Handler) CreateFileRecord(c *gin.Context) {
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetUnit(c.Request.Context(), req.LodgingUnitID); err != nil {
		respondError(c, err)
		return
	}

	file := model.PropertyFile{
		LodgingUnitID: req.LodgingUnitID,
		FileName:      req.FileName,
		FileType:      req.FileType,
		FileCategory:  req.FileCategory,
		FilePath:      req.FilePath,
		FileSize:      req.FileSize,
		Description:   req.Description,
		UploadedBy:    req.UploadedBy,
	}
	if err := h.store.SaveFileRecord(c.Request.Context(), &file); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

// GetFiles handles GET /api/property/files?unit_id=&category=.
func (h *Handler) GetFiles(c *gin.Context) {
	unitID, ok := unitIDQuery(c)
	if !ok {
		return
	}
	files, err := h.store.ListFiles(c.Request.Context(), store.FileFilter{
		UnitID:   unitID,
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

type createInspectionRequest struct {
	LodgingUnitID      int64  `json:"lodging_unit_id" binding:"required"`
	InspectionType     string `json:"inspection_type" binding:"required"`
	InspectionDate     string `json:"inspection_date" binding:"required"`
	InspectorName      string `json:"inspector_name"`
	OverallRating      int    `json:"overall_rating"`
	ChecklistData      string `json:"checklist_data"`
	IssuesFound        string `json:"issues_found"`
	Recommendations    string `json:"recommendations"`
	NextInspectionDate string `json:"next_inspection_date"`
}

// CreateInspection handles POST /api/property/inspections.
func (h *Handler) CreateInspection(c *gin.Context) {
	var req createInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OverallRating < 1 || req.OverallRating > 5 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "overall_rating must be between 1 and 5"})
		return
	}
	if _, err := h.store.GetUnit(c.Request.Context(), req.LodgingUnitID); err != nil {
		respondError(c, err)
		return
	}
	inspectionDate, err := model.ParseDay(req.InspectionDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid inspection_date, expected YYYY-MM-DD"})
		return
	}
	next, err := optionalDate(req.NextInspectionDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ins := model.PropertyInspection{
		LodgingUnitID:      req.LodgingUnitID,
		InspectionType:     req.InspectionType,
		InspectionDate:     inspectionDate,
		InspectorName:      req.InspectorName,
		OverallRating:      req.OverallRating,
		ChecklistData:      req.ChecklistData,
		IssuesFound:        req.IssuesFound,
		Recommendations:    req.Recommendations,
		NextInspectionDate: next,
	}
	if err := h.store.CreateInspection(c.Request.Context(), &ins); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ins)
}

// GetInspections handles GET /api/property/inspections?unit_id=&type=.
func (h *Handler) GetInspections(c *gin.Context) {
	unitID, ok := unitIDQuery(c)
	if !ok {
		return
	}
	inspections, err := h.store.ListInspections(c.Request.Context(), store.InspectionFilter{
		UnitID:         unitID,
		InspectionType: c.Query("type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inspections)
}

type createScheduleRequest struct {
	LodgingUnitID int64    `json:"lodging_unit_id" binding:"required"`
	ScheduleName  string   `json:"schedule_name" binding:"required"`
	TaskType      string   `json:"task_type" binding:"required"`
	Frequency     string   `json:"frequency" binding:"required"`
	NextDueDate   string   `json:"next_due_date" binding:"required"`
	Description   string   `json:"description"`
	EstimatedCost *float64 `json:"estimated_cost"`
}

// CreateMaintenanceSchedule handles POST /api/property/schedules.
func (h *Handler) CreateMaintenanceSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetUnit(c.Request.Context(), req.LodgingUnitID); err != nil {
		respondError(c, err)
		return
	}
	nextDue, err := model.ParseDay(req.NextDueDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid next_due_date, expected YYYY-MM-DD"})
		return
	}

	sched := model.MaintenanceSchedule{
		LodgingUnitID: req.LodgingUnitID,
		ScheduleName:  req.ScheduleName,
		TaskType:      req.TaskType,
		Frequency:     req.Frequency,
		NextDueDate:   nextDue,
		Description:   req.Description,
		EstimatedCost: req.EstimatedCost,
		IsActive:      true,
	}
	if err := h.store.CreateMaintenanceSchedule(c.Request.Context(), &sched); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// GetMaintenanceSchedules handles GET /api/property/schedules?unit_id=&overdue=true.
func (h *Handler) GetMaintenanceSchedules(c *gin.Context) {
	unitID, ok := unitIDQuery(c)
	if !ok {
		return
	}
	schedules, err := h.store.ListMaintenanceSchedules(c.Request.Context(), store.ScheduleFilter{
		UnitID:      unitID,
		OverdueOnly: c.Query("overdue") == "true",
		Today:       time.Now().UTC(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetPropertyDashboard handles GET /api/property/dashboard.
func (h *Handler) GetPropertyDashboard(c *gin.Context) {
	dashboard, err := h.store.PropertyDashboard(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func defaultPriority(p string) string {
	if p == "" {
		return model.PriorityMedium
	}
	return p
}
