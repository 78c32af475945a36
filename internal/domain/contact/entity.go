package contact

import (
	"strings"
	"time"
)

type ContactType string

const (
	TypeContact    ContactType = "contact"
	TypeIndividual ContactType = "individual"
)

func (t ContactType) Valid() bool {
	return t == TypeContact || t == TypeIndividual
}

type Organization struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name" validate:"required"`
	TaxID     string    `gorm:"column:tax_id" json:"tax_id,omitempty"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	Phone     string    `gorm:"column:phone" json:"phone,omitempty"`
	Address   string    `gorm:"column:address" json:"address,omitempty"`
	City      string    `gorm:"column:city" json:"city,omitempty"`
	Notes     string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }

// Contact is a person. Individuals are private clients with no organization.
type Contact struct {
	ID          int64       `gorm:"column:id;primaryKey" json:"id"`
	ContactType ContactType `gorm:"column:contact_type;not null;default:contact" json:"contact_type" validate:"oneof=contact individual"`
	FirstName   string      `gorm:"column:first_name" json:"first_name"`
	LastName    string      `gorm:"column:last_name" json:"last_name"`
	Email       string      `gorm:"column:email" json:"email,omitempty"`
	Phone       string      `gorm:"column:phone" json:"phone,omitempty"`
	Position    string      `gorm:"column:position" json:"position,omitempty"`
	Notes       string      `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Contact) TableName() string { return "contacts" }

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ContactOrganization links a contact to an organization. Past employers are
// kept with IsCurrent false.
type ContactOrganization struct {
	ID             int64     `gorm:"column:id;primaryKey" json:"id"`
	ContactID      int64     `gorm:"column:contact_id;not null;uniqueIndex:idx_contact_org" json:"contact_id"`
	OrganizationID int64     `gorm:"column:organization_id;not null;uniqueIndex:idx_contact_org;index" json:"organization_id"`
	IsCurrent      bool      `gorm:"column:is_current;not null" json:"is_current"`
	Position       string    `gorm:"column:position" json:"position,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ContactOrganization) TableName() string { return "contact_organizations" }

func Models() []any {
	return []any{&Organization{}, &Contact{}, &ContactOrganization{}}
}
