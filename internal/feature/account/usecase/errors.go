package usecase

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be resolved by
	// user_id or email among non-deleted accounts.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUserIDTaken is returned when an insert hits the unique constraint
	// on user_id.
	ErrUserIDTaken = errors.New("user_id already exists")

	// ErrEmailTaken is returned when an insert hits the unique constraint
	// on email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrTokenNotFound is returned when a token cannot be found by its value.
	ErrTokenNotFound = errors.New("token not found")
)
