package equipment

import "time"

type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitDamaged   UnitStatus = "damaged"
	UnitInService UnitStatus = "in_service"
	UnitRetired   UnitStatus = "retired"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitDamaged, UnitInService, UnitRetired:
		return true
	}
	return false
}

// Category is a warehouse category. ParentID forms a tree that is expected to
// be acyclic but is not enforced by the database.
type Category struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	ParentID  *int64    `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string { return "equipment_categories" }

type Item struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Brand       string    `gorm:"column:brand" json:"brand,omitempty"`
	Model       string    `gorm:"column:model" json:"model,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CategoryID  *int64    `gorm:"column:category_id;index" json:"category_id,omitempty"`
	IsKit       bool      `gorm:"column:is_kit;not null;default:false" json:"is_kit"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Units []Unit `gorm:"foreignKey:ItemID" json:"units,omitempty"`
}

func (Item) TableName() string { return "equipment_items" }

// Unit is one physical, individually tracked piece of an item.
type Unit struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	ItemID       int64      `gorm:"column:item_id;index;not null" json:"item_id"`
	SerialNumber string     `gorm:"column:serial_number" json:"serial_number,omitempty"`
	Status       UnitStatus `gorm:"column:status;not null;default:available" json:"status" validate:"required,oneof=available damaged in_service retired"`
	Notes        string     `gorm:"column:notes" json:"notes,omitempty"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Unit) TableName() string { return "equipment_units" }

func Models() []any {
	return []any{&Category{}, &Item{}, &Unit{}}
}
