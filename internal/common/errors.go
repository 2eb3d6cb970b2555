package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Recruiting errors
	ErrJobNotFound       = errors.New("job not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrTalentNotFound    = errors.New("talent not found")
	ErrDynamicNotFound   = errors.New("dynamic not found")

	// Messaging errors
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageDeleted  = errors.New("message deleted")
	ErrEmptyMessage    = errors.New("message text is empty")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
