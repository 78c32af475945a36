package equipment

import "errors"

var (
	ErrItemNotFound     = errors.New("equipment item not found")
	ErrUnitNotFound     = errors.New("equipment unit not found")
	ErrCategoryNotFound = errors.New("equipment category not found")
	ErrCategoryCycle    = errors.New("equipment category parent chain contains a cycle")
	ErrInvalidStatus    = errors.New("invalid equipment unit status")
	ErrKitUnits         = errors.New("kits do not carry units")
)
