package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup, update or delete matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert hits a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)
