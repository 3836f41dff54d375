package usecase

import "errors"

var (
	// ErrChildNotFound is returned when a child cannot be resolved within
	// the caller's group among non-deleted children.
	ErrChildNotFound = errors.New("child not found")

	// ErrChildIDTaken is returned when an insert hits the unique constraint
	// on the child's user_id.
	ErrChildIDTaken = errors.New("child user_id already exists")
)
