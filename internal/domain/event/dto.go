package event

import "time"

type ListQuery struct {
	Status string     `form:"status"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Q      string     `form:"q"`
}

type CreateEventRequest struct {
	Name           string     `json:"name" validate:"required,max=255"`
	OrganizationID *int64     `json:"organization_id" validate:"omitempty,gt=0"`
	ContactID      *int64     `json:"contact_id" validate:"omitempty,gt=0"`
	EventDate      time.Time  `json:"event_date" validate:"required"`
	EndDate        *time.Time `json:"end_date"`
	Location       string     `json:"location" validate:"max=255"`
	Status         Status     `json:"status"`
	Description    string     `json:"description"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

type FolderRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
