package contact

type ListQuery struct {
	Type string `form:"type"`
	Q    string `form:"q"`
}

type CreateOrganizationRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	TaxID   string `json:"tax_id" validate:"max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address"`
	City    string `json:"city" validate:"max=120"`
	Notes   string `json:"notes"`
}

type CreateContactRequest struct {
	ContactType ContactType `json:"contact_type"`
	FirstName   string      `json:"first_name" validate:"required,max=120"`
	LastName    string      `json:"last_name" validate:"max=120"`
	Email       string      `json:"email" validate:"omitempty,email"`
	Phone       string      `json:"phone" validate:"max=40"`
	Position    string      `json:"position" validate:"max=120"`
	Notes       string      `json:"notes"`
	// OrganizationID links the new contact to an organization right away.
	OrganizationID *int64 `json:"organization_id" validate:"omitempty,gt=0"`
}

type LinkOrganizationRequest struct {
	OrganizationID int64  `json:"organization_id" validate:"required,gt=0"`
	IsCurrent      *bool  `json:"is_current"`
	Position       string `json:"position" validate:"max=120"`
}
