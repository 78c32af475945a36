package task

import "time"

type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "in_progress"
	ColumnReview     Column = "review"
	ColumnCompleted  Column = "completed"
)

// Columns is the fixed board order.
var Columns = []Column{ColumnTodo, ColumnInProgress, ColumnReview, ColumnCompleted}

func (c Column) Valid() bool {
	for _, col := range Columns {
		if c == col {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	EventID     *int64     `gorm:"column:event_id;index" json:"event_id,omitempty"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description" json:"description,omitempty"`
	BoardColumn Column     `gorm:"column:board_column;not null;default:todo" json:"board_column"`
	Priority    Priority   `gorm:"column:priority;not null;default:medium" json:"priority"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CreatedBy   int64      `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	AssigneeRows []Assignee `gorm:"foreignKey:TaskID" json:"-"`
	Assignees    []int64    `gorm:"-" json:"assignees"`
}

func (Task) TableName() string { return "tasks" }

// fillAssignees copies the joined rows into Assignees.
func (t *Task) fillAssignees() {
	t.Assignees = make([]int64, 0, len(t.AssigneeRows))
	for _, a := range t.AssigneeRows {
		t.Assignees = append(t.Assignees, a.EmployeeID)
	}
}

type Assignee struct {
	TaskID     int64     `gorm:"column:task_id;primaryKey" json:"task_id"`
	EmployeeID int64     `gorm:"column:employee_id;primaryKey" json:"employee_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Assignee) TableName() string { return "task_assignees" }

type Comment struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	TaskID    int64     `gorm:"column:task_id;index;not null" json:"task_id"`
	AuthorID  int64     `gorm:"column:author_id;not null" json:"author_id"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Comment) TableName() string { return "task_comments" }

type Attachment struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	TaskID     int64     `gorm:"column:task_id;index;not null" json:"task_id"`
	FileName   string    `gorm:"column:file_name;not null" json:"file_name"`
	Bucket     string    `gorm:"column:bucket;not null" json:"bucket"`
	Path       string    `gorm:"column:path;not null" json:"path"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type"`
	Size       int64     `gorm:"column:size" json:"size"`
	UploadedBy int64     `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	URL string `gorm:"-" json:"url,omitempty"`
}

func (Attachment) TableName() string { return "task_attachments" }

func Models() []any {
	return []any{&Task{}, &Assignee{}, &Comment{}, &Attachment{}}
}
