package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadySignedUp = errors.New("student is already signed up for this activity")
	ErrNotSignedUp     = errors.New("student is not signed up for this activity")
	ErrActivityFull    = errors.New("activity is full")
	ErrInvalidSeed     = errors.New("invalid activity seed")
)
