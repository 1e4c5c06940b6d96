package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrLocked            = errors.New("record is not editable in its current state")
	ErrUnauthorized      = errors.New("actor does not own this record")
	ErrValidation        = errors.New("validation failed")
)
