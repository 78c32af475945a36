package task

import "time"

type CreateTaskRequest struct {
	EventID     *int64     `json:"event_id" validate:"omitempty,gt=0"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description"`
	BoardColumn Column     `json:"board_column"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Assignees   []int64    `json:"assignees" validate:"dive,gt=0"`
}

type MoveRequest struct {
	Column Column `json:"column" validate:"required"`
}

type AssigneesRequest struct {
	Assignees []int64 `json:"assignees" validate:"dive,gt=0"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"max=5000"`
}

type BoardQuery struct {
	EventID *int64 `form:"event_id"`
}
