package entity

import "errors"

// Domain errors returned by services and repositories. Handlers map these
// to HTTP status codes with errors.Is.
var (
	ErrZoneNotFound    = errors.New("zone not found")
	ErrZoneFull        = errors.New("zone is full")
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyActive   = errors.New("user already has an active session")
	ErrInvalidInterval = errors.New("end time before start time")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
