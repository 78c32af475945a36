package event

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidStatus     = errors.New("invalid event status")
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidFolderName = errors.New("invalid folder name")
	ErrFolderNotFound    = errors.New("folder not found")
)
