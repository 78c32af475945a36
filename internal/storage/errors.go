package storage

import "errors"

var (
	ErrUnknownBucket  = errors.New("unknown bucket")
	ErrInvalidPath    = errors.New("invalid object path")
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
	ErrEmptyFile      = errors.New("file is empty")
	ErrFileTooLarge   = errors.New("file too large")
	ErrLinkExpired    = errors.New("signed link is invalid or expired")
)
