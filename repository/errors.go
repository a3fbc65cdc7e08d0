package repository

import "errors"

var (
	// ErrNotFound is returned when the addressed user does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("duplicate")
)
