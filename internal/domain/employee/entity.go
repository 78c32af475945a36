package employee

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ViewMode is how a module's list is displayed.
type ViewMode string

const (
	ViewList     ViewMode = "list"
	ViewGrid     ViewMode = "grid"
	ViewCalendar ViewMode = "calendar"
	ViewKanban   ViewMode = "kanban"
)

func (m ViewMode) Valid() bool {
	switch m {
	case ViewList, ViewGrid, ViewCalendar, ViewKanban:
		return true
	}
	return false
}

type NotificationSettings struct {
	Email           bool     `json:"email"`
	Push            bool     `json:"push"`
	InApp           bool     `json:"in_app"`
	MutedCategories []string `json:"muted_categories"`
}

// Wants reports whether an in-app notification of category should be
// delivered.
func (s NotificationSettings) Wants(category string) bool {
	if !s.InApp {
		return false
	}
	for _, muted := range s.MutedCategories {
		if muted == category {
			return false
		}
	}
	return true
}

type Preferences struct {
	ViewModes     map[string]ViewMode  `json:"view_modes"`
	Notifications NotificationSettings `json:"notifications"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		ViewModes: map[string]ViewMode{},
		Notifications: NotificationSettings{
			Email:           true,
			InApp:           true,
			MutedCategories: []string{},
		},
	}
}

type Employee struct {
	ID              int64                           `gorm:"column:id;primaryKey" json:"id"`
	Email           string                          `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash    string                          `gorm:"column:password_hash;not null" json:"-"`
	Name            string                          `gorm:"column:name" json:"name"`
	Surname         string                          `gorm:"column:surname" json:"surname"`
	Phone           string                          `gorm:"column:phone" json:"phone,omitempty"`
	Role            Role                            `gorm:"column:role;not null;default:employee" json:"role"`
	Permissions     datatypes.JSONSlice[string]     `gorm:"column:permissions" json:"permissions"`
	NavigationOrder datatypes.JSONSlice[string]     `gorm:"column:navigation_order" json:"navigation_order"`
	Preferences     datatypes.JSONType[Preferences] `gorm:"column:preferences" json:"preferences"`
	IsActive        bool                            `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt       time.Time                       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time                       `gorm:"column:updated_at" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) FullName() string {
	if e.Surname == "" {
		return e.Name
	}
	return e.Name + " " + e.Surname
}

func (e *Employee) IsAdmin() bool { return e.Role == RoleAdmin }
