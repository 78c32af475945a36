package task

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidColumn      = errors.New("unknown board column")
	ErrInvalidPriority    = errors.New("unknown task priority")
	ErrMoveFailed         = errors.New("task move failed")
	ErrEmptyComment       = errors.New("comment is empty")
	ErrCommentFailed      = errors.New("comment could not be saved")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrMutationNotFound   = errors.New("mutation not found")
)
