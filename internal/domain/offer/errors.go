package offer

import "errors"

var (
	ErrOfferNotFound   = errors.New("offer not found")
	ErrItemNotFound    = errors.New("offer item not found")
	ErrProductNotFound = errors.New("offer product not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
	ErrInvalidVAT      = errors.New("vat rate must not be negative")
	ErrEmptyOffer      = errors.New("offer has no items")
	ErrInvalidStatus   = errors.New("invalid offer status")
	ErrExportFailed    = errors.New("offer export failed")
)
