package model

import "time"

// Priority and status values shared by property-management records.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// PropertyNote is a free-form staff note attached to a unit.
type PropertyNote struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	LodgingUnitID int64     `gorm:"not null;index" json:"lodging_unit_id"`
	NoteType      string    `gorm:"size:50;not null" json:"note_type"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Content       string    `gorm:"not null" json:"content"`
	Priority      string    `gorm:"size:20;default:medium" json:"priority"`
	CreatedBy     string    `gorm:"size:100" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MaintenanceTask is a one-off repair or upkeep job for a unit.
type MaintenanceTask struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	LodgingUnitID int64      `gorm:"not null;index" json:"lodging_unit_id"`
	TaskTitle     string     `gorm:"size:200;not null" json:"task_title"`
	Description   string     `json:"description"`
	TaskType      string     `gorm:"size:50;not null" json:"task_type"`
	Priority      string     `gorm:"size:20;default:medium" json:"priority"`
	Status        string     `gorm:"size:20;default:pending;index" json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date"`
	AssignedTo    string     `gorm:"size:100" json:"assigned_to"`
	EstimatedCost *float64   `json:"estimated_cost"`
	ActualCost    *float64   `json:"actual_cost"`
	CreatedBy     string     `gorm:"size:100" json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PropertyTodo is a lightweight task, optionally tied to a unit.
type PropertyTodo struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	LodgingUnitID *int64     `gorm:"index" json:"lodging_unit_id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `json:"description"`
	Priority      string     `gorm:"size:20;default:medium" json:"priority"`
	Status        string     `gorm:"size:20;default:pending;index" json:"status"`
	DueDate       *time.Time `json:"due_date"`
	AssignedTo    string     `gorm:"size:100" json:"assigned_to"`
	Category      string     `gorm:"size:50" json:"category"`
	CreatedBy     string     `gorm:"size:100" json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// PropertyFile records an uploaded document or photo for a unit. The file
// body lives on disk; only metadata is stored here.
type PropertyFile struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	LodgingUnitID int64     `gorm:"not null;index" json:"lodging_unit_id"`
	FileName      string    `gorm:"size:255;not null" json:"file_name"`
	FileType      string    `gorm:"size:50;not null" json:"file_type"`
	FileCategory  string    `gorm:"size:50;not null" json:"file_category"`
	FilePath      string    `gorm:"size:500;not null" json:"file_path"`
	FileSize      int64     `json:"file_size"`
	Description   string    `json:"description"`
	UploadedBy    string    `gorm:"size:100" json:"uploaded_by"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// PropertyInspection is a dated walkthrough record with a 1-5 rating and a
// JSON checklist blob.
type PropertyInspection struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	LodgingUnitID      int64      `gorm:"not null;index" json:"lodging_unit_id"`
	InspectionType     string     `gorm:"size:50;not null" json:"inspection_type"`
	InspectionDate     time.Time  `gorm:"not null" json:"inspection_date"`
	InspectorName      string     `gorm:"size:100" json:"inspector_name"`
	OverallRating      int        `json:"overall_rating"`
	ChecklistData      string     `json:"checklist_data"`
	IssuesFound        string     `json:"issues_found"`
	Recommendations    string     `json:"recommendations"`
	NextInspectionDate *time.Time `json:"next_inspection_date"`
	CreatedAt          time.Time  `json:"created_at"`
}

// MaintenanceSchedule defines recurring upkeep (e.g. quarterly gutter
// cleaning) with a rolling next-due date.
type MaintenanceSchedule struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	LodgingUnitID int64      `gorm:"not null;index" json:"lodging_unit_id"`
	ScheduleName  string     `gorm:"size:200;not null" json:"schedule_name"`
	TaskType      string     `gorm:"size:50;not null" json:"task_type"`
	Frequency     string     `gorm:"size:50;not null" json:"frequency"`
	NextDueDate   time.Time  `gorm:"not null" json:"next_due_date"`
	LastCompleted *time.Time `json:"last_completed"`
	Description   string     `json:"description"`
	EstimatedCost *float64   `json:"estimated_cost"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
