package notification

import "time"

// Category groups notifications so employees can mute whole kinds of them.
type Category string

const (
	CategoryTaskAssigned Category = "task_assigned"
	CategoryTaskMoved    Category = "task_moved"
	CategoryTaskComment  Category = "task_comment"
	CategoryOfferStatus  Category = "offer_status"
	CategoryEventUpdate  Category = "event_update"
	CategorySystem       Category = "system"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Notification is the shared body; Recipient rows carry per-employee state.
type Notification struct {
	ID                int64     `gorm:"column:id;primaryKey" json:"id"`
	Category          Category  `gorm:"column:category;index;not null" json:"category"`
	Title             string    `gorm:"column:title;not null" json:"title"`
	Message           string    `gorm:"column:message" json:"message"`
	Priority          Priority  `gorm:"column:priority;not null;default:normal" json:"priority"`
	RelatedEntityType string    `gorm:"column:related_entity_type" json:"related_entity_type,omitempty"`
	RelatedEntityID   *int64    `gorm:"column:related_entity_id" json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

type Recipient struct {
	ID             int64      `gorm:"column:id;primaryKey" json:"id"`
	NotificationID int64      `gorm:"column:notification_id;index;not null" json:"notification_id"`
	EmployeeID     int64      `gorm:"column:employee_id;index:idx_recipients_employee_read;not null" json:"employee_id"`
	IsRead         bool       `gorm:"column:is_read;index:idx_recipients_employee_read;not null;default:false" json:"is_read"`
	ReadAt         *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`

	Notification *Notification `gorm:"foreignKey:NotificationID" json:"notification,omitempty"`
}

func (Recipient) TableName() string { return "notification_recipients" }

func Models() []any {
	return []any{&Notification{}, &Recipient{}}
}
