package catalog

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOutOfRange        = errors.New("value out of range")
)
