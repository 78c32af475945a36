package equipment

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
}

type CreateItemRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Brand        string `json:"brand" validate:"max=120"`
	Model        string `json:"model" validate:"max=120"`
	Description  string `json:"description"`
	CategoryID   *int64 `json:"category_id" validate:"omitempty,gt=0"`
	IsKit        bool   `json:"is_kit"`
	InitialUnits int    `json:"initial_units" validate:"gte=0,lte=500"`
}

type CreateUnitRequest struct {
	SerialNumber string     `json:"serial_number" validate:"max=120"`
	Status       UnitStatus `json:"status"`
	Notes        string     `json:"notes"`
}

type UpdateUnitStatusRequest struct {
	Status UnitStatus `json:"status" validate:"required"`
	Notes  *string    `json:"notes"`
}

type PathResponse struct {
	CategoryID int64      `json:"category_id"`
	Path       string     `json:"path"`
	Chain      []Category `json:"chain"`
}
