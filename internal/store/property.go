package store

import (
	"context"
	"fmt"
	"time"

	"retreat-booking-backend/internal/model"
)

// PropertyStore groups the property-management operations: staff notes,
// maintenance tasks and schedules, todos, file records, and inspections.
type PropertyStore interface {
	CreateNote(ctx context.Context, note *model.PropertyNote) error
	ListNotes(ctx context.Context, f NoteFilter) ([]model.PropertyNote, error)

	CreateMaintenanceTask(ctx context.Context, task *model.MaintenanceTask) error
	ListMaintenanceTasks(ctx context.Context, f TaskFilter) ([]model.MaintenanceTask, error)
	UpdateMaintenanceTask(ctx context.Context, id int64, update TaskUpdate) error

	CreateTodo(ctx context.Context, todo *model.PropertyTodo) error
	ListTodos(ctx context.Context, f TodoFilter) ([]model.PropertyTodo, error)
	UpdateTodo(ctx context.Context, id int64, update TodoUpdate) error

	SaveFileRecord(ctx context.Context, file *model.PropertyFile) error
	ListFiles(ctx context.Context, f FileFilter) ([]model.PropertyFile, error)

	CreateInspection(ctx context.Context, ins *model.PropertyInspection) error
	ListInspections(ctx context.Context, f InspectionFilter) ([]model.PropertyInspection, error)

	CreateMaintenanceSchedule(ctx context.Context, sched *model.MaintenanceSchedule) error
	ListMaintenanceSchedules(ctx context.Context, f ScheduleFilter) ([]model.MaintenanceSchedule, error)

	PropertyDashboard(ctx context.Context, today time.Time) (*PropertyDashboard, error)
}

// NoteFilter narrows ListNotes; zero values mean no filter.
type NoteFilter struct {
	UnitID   int64
	NoteType string
}

// TaskFilter narrows ListMaintenanceTasks.
type TaskFilter struct {
	UnitID      int64
	Status      string
	OverdueOnly bool
	Today       time.Time
}

// TaskUpdate carries the mutable fields of a maintenance task; nil fields
// are left unchanged.
type TaskUpdate struct {
	Status        *string
	ActualCost    *float64
	CompletedDate *time.Time
}

// TodoFilter narrows ListTodos.
type TodoFilter struct {
	UnitID      int64
	Status      string
	Category    string
	OverdueOnly bool
	Today       time.Time
}

// TodoUpdate carries the mutable fields of a todo; nil fields are left
// unchanged.
type TodoUpdate struct {
	Status      *string
	CompletedAt *time.Time
}

// FileFilter narrows ListFiles.
type FileFilter struct {
	UnitID   int64
	Category string
}

// InspectionFilter narrows ListInspections.
type InspectionFilter struct {
	UnitID         int64
	InspectionType string
}

// ScheduleFilter narrows ListMaintenanceSchedules. Inactive schedules are
// always excluded.
type ScheduleFilter struct {
	UnitID      int64
	OverdueOnly bool
	Today       time.Time
}

// PropertyDashboard aggregates property-management statistics.
type PropertyDashboard struct {
	PendingMaintenance int64 `json:"pending_maintenance"`
	OverdueMaintenance int64 `json:"overdue_maintenance"`
	PendingTodos       int64 `json:"pending_todos"`
	OverdueTodos       int64 `json:"overdue_todos"`
	RecentNotes        int64 `json:"recent_notes"`
	TotalFiles         int64 `json:"total_files"`
	InspectionsDueSoon int64 `json:"inspections_due_soon"`
}

func (s *gormStore) CreateNote(ctx context.Context, note *model.PropertyNote) error {
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("creating property note: %w", err)
	}
	return nil
}

func (s *gormStore) ListNotes(ctx context.Context, f NoteFilter) ([]model.PropertyNote, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if f.UnitID != 0 {
		q = q.Where("lodging_unit_id = ?", f.UnitID)
	}
	if f.NoteType != "" {
		q = q.Where("note_type = ?", f.NoteType)
	}

	var notes []model.PropertyNote
	if err := q.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("listing property notes: %w", err)
	}
	return notes, nil
}

func (s *gormStore) CreateMaintenanceTask(ctx context.Context, task *model.MaintenanceTask) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("creating maintenance task: %w", err)
	}
	return nil
}

func (s *gormStore) ListMaintenanceTasks(ctx context.Context, f TaskFilter) ([]model.MaintenanceTask, error) {
	q := s.db.WithContext(ctx).Order("scheduled_date, priority DESC")
	if f.UnitID != 0 {
		q = q.Where("lodging_unit_id = ?", f.UnitID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OverdueOnly {
		q = q.Where("scheduled_date < ? AND status != ?", model.Day(f.Today), model.TaskStatusCompleted)
	}

	var tasks []model.MaintenanceTask
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("listing maintenance tasks: %w", err)
	}
	return tasks, nil
}

func (s *gormStore) UpdateMaintenanceTask(ctx context.Context, id int64, update TaskUpdate) error {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.ActualCost != nil {
		fields["actual_cost"] = *update.ActualCost
	}
	if update.CompletedDate != nil {
		fields["completed_date"] = model.Day(*update.CompletedDate)
	}

	res := s.db.WithContext(ctx).Model(&model.MaintenanceTask{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating maintenance task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("maintenance task %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *gormStore) CreateTodo(ctx context.Context, todo *model.PropertyTodo) error {
	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

func (s *gormStore) ListTodos(ctx context.Context, f TodoFilter) ([]model.PropertyTodo, error) {
	q := s.db.WithContext(ctx).Order("due_date, priority DESC")
	if f.UnitID != 0 {
		q = q.Where("lodging_unit_id = ?", f.UnitID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.OverdueOnly {
		q = q.Where("due_date < ? AND status = ?", model.Day(f.Today), model.TaskStatusPending)
	}

	var todos []model.PropertyTodo
	if err := q.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

func (s *gormStore) UpdateTodo(ctx context.Context, id int64, update TodoUpdate) error {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.CompletedAt != nil {
		fields["completed_at"] = *update.CompletedAt
	}

	res := s.db.WithContext(ctx).Model(&model.PropertyTodo{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating todo %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *gormStore) SaveFileRecord(ctx context.Context, file *model.PropertyFile) error {
	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("saving file record: %w", err)
	}
	return nil
}

func (s *gormStore) ListFiles(ctx context.Context, f FileFilter) ([]model.PropertyFile, error) {
	q := s.db.WithContext(ctx).Order("uploaded_at DESC")
	if f.UnitID != 0 {
		q = q.Where("lodging_unit_id = ?", f.UnitID)
	}
	if f.Category != "" {
		q = q.Where("file_category = ?", f.Category)
	}

	var files []model.PropertyFile
	if err := q.Find(&files).Error; err != nil {
		return nil, fmt.Errorf("listing property files: %w", err)
	}
	return files, nil
}

func (s *gormStore) CreateInspection(ctx context.Context, ins *model.PropertyInspection) error {
	if err := s.db.WithContext(ctx).Create(ins).Error; err != nil {
		return fmt.Errorf("creating inspection: %w", err)
	}
	return nil
}

func (s *gormStore) ListInspections(ctx context.Context, f InspectionFilter) ([]model.PropertyInspection, error) {
	q := s.db.WithContext(ctx).Order("inspection_date DESC")
	if f.UnitID != 0 {
		q = q.Where("lodging_unit_id = ?", f.UnitID)
	}
	if f.InspectionType != "" {
		q = q.Where("inspection_type = ?", f.InspectionType)
	}

	var inspections []model.PropertyInspection
	if err := q.Find(&inspections).Error; err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	return inspections, nil
}

func (s *gormStore) CreateMaintenanceSchedule(ctx context.Context, sched *model.MaintenanceSchedule) error {
	if err := s.db.WithContext(ctx).Create(sched).Error; err != nil {
		return fmt.Errorf("creating maintenance schedule: %w", err)
	}
	return nil
}

func (s *gormStore) ListMaintenanceSchedules(ctx context.Context, f ScheduleFilter) ([]model.MaintenanceSchedule, error) {
	q := s.db.WithContext(ctx).Where("is_active = ?", true).Order("next_due_date")
	if f.UnitID != 0 {
		q = q.Where("lodging_unit_id = ?", f.UnitID)
	}
	if f.OverdueOnly {
		q = q.Where("next_due_date < ?", model.Day(f.Today))
	}

	var schedules []model.MaintenanceSchedule
	if err := q.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("listing maintenance schedules: %w", err)
	}
	return schedules, nil
}

// PropertyDashboard aggregates counts for the staff property overview.
func (s *gormStore) PropertyDashboard(ctx context.Context, today time.Time) (*PropertyDashboard, error) {
	today = model.Day(today)
	weekAgo := today.AddDate(0, 0, -7)
	monthAhead := today.AddDate(0, 0, 30)

	var d PropertyDashboard
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query func() error
	}{
		{&d.PendingMaintenance, func() error {
			return db.Model(&model.MaintenanceTask{}).
				Where("status = ?", model.TaskStatusPending).Count(&d.PendingMaintenance).Error
		}},
		{&d.OverdueMaintenance, func() error {
			return db.Model(&model.MaintenanceTask{}).
				Where("scheduled_date < ? AND status = ?", today, model.TaskStatusPending).
				Count(&d.OverdueMaintenance).Error
		}},
		{&d.PendingTodos, func() error {
			return db.Model(&model.PropertyTodo{}).
				Where("status = ?", model.TaskStatusPending).Count(&d.PendingTodos).Error
		}},
		{&d.OverdueTodos, func() error {
			return db.Model(&model.PropertyTodo{}).
				Where("due_date < ? AND status = ?", today, model.TaskStatusPending).
				Count(&d.OverdueTodos).Error
		}},
		{&d.RecentNotes, func() error {
			return db.Model(&model.PropertyNote{}).
				Where("created_at >= ?", weekAgo).Count(&d.RecentNotes).Error
		}},
		{&d.TotalFiles, func() error {
			return db.Model(&model.PropertyFile{}).Count(&d.TotalFiles).Error
		}},
		{&d.InspectionsDueSoon, func() error {
			return db.Model(&model.PropertyInspection{}).
				Where("next_inspection_date >= ? AND next_inspection_date <= ?", today, monthAhead).
				Count(&d.InspectionsDueSoon).Error
		}},
	}

	for _, c := range counts {
		if err := c.query(); err != nil {
			return nil, fmt.Errorf("property dashboard aggregation: %w", err)
		}
	}
	return &d, nil
}
