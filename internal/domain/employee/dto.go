package employee

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string    `json:"token"`
	Employee *Employee `json:"employee"`
}

type CreateEmployeeRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Name        string   `json:"name" validate:"required,max=100"`
	Surname     string   `json:"surname" validate:"max=100"`
	Phone       string   `json:"phone" validate:"omitempty,max=30"`
	Role        Role     `json:"role" validate:"omitempty,oneof=admin employee"`
	Permissions []string `json:"permissions"`
}

// UpdatePreferencesRequest is a partial update: nil fields are left as they are.
type UpdatePreferencesRequest struct {
	ViewModes     map[string]ViewMode   `json:"view_modes"`
	Notifications *NotificationSettings `json:"notifications"`
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type ICalTokenResponse struct {
	Token string `json:"token"`
}
