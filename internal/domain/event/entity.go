package event

import (
	"time"
)

type Status string

const (
	StatusOfferSent     Status = "offer_sent"
	StatusOfferAccepted Status = "offer_accepted"
	StatusInPreparation Status = "in_preparation"
	StatusInProgress    Status = "in_progress"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
	StatusInvoiced      Status = "invoiced"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOfferSent, StatusOfferAccepted, StatusInPreparation, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusInvoiced:
		return true
	}
	return false
}

// DocumentsFolder is the root folder every event's documents live under.
const DocumentsFolder = "Dokumenty"

type Event struct {
	ID             int64      `gorm:"column:id;primaryKey" json:"id"`
	Name           string     `gorm:"column:name;not null" json:"name"`
	OrganizationID *int64     `gorm:"column:organization_id;index" json:"organization_id,omitempty"`
	ContactID      *int64     `gorm:"column:contact_id;index" json:"contact_id,omitempty"`
	EventDate      time.Time  `gorm:"column:event_date;not null;index" json:"event_date"`
	EndDate        *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Location       string     `gorm:"column:location" json:"location,omitempty"`
	Status         Status     `gorm:"column:status;not null;default:offer_sent" json:"status"`
	Description    string     `gorm:"column:description" json:"description,omitempty"`
	CreatedBy      int64      `gorm:"column:created_by" json:"created_by"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Event) TableName() string { return "events" }

// Folder is a node of an event's document tree. Path is the slash-joined
// chain of names from the root and is unique per event.
type Folder struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	EventID   int64     `gorm:"column:event_id;not null;uniqueIndex:idx_event_folder_path" json:"event_id"`
	ParentID  *int64    `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Path      string    `gorm:"column:path;not null;uniqueIndex:idx_event_folder_path" json:"path"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Folder) TableName() string { return "event_folders" }

type File struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	EventID    int64     `gorm:"column:event_id;not null;index" json:"event_id"`
	FolderID   *int64    `gorm:"column:folder_id;index" json:"folder_id,omitempty"`
	FileName   string    `gorm:"column:file_name;not null" json:"file_name"`
	Bucket     string    `gorm:"column:bucket;not null" json:"bucket"`
	Path       string    `gorm:"column:path;not null" json:"path"`
	MimeType   string    `gorm:"column:mime_type" json:"mime_type"`
	Size       int64     `gorm:"column:size" json:"size"`
	UploadedBy int64     `gorm:"column:uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	URL string `gorm:"-" json:"url,omitempty"`
}

func (File) TableName() string { return "event_files" }

func Models() []any {
	return []any{&Event{}, &Folder{}, &File{}}
}
