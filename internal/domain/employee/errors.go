package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("employee account is inactive")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidViewMode    = errors.New("invalid view mode")
)
