package contact

import "errors"

var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrInvalidType          = errors.New("invalid contact type")
	ErrRelationExists       = errors.New("contact already linked to organization")
)
