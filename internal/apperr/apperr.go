// Package apperr defines the error taxonomy shared by services and handlers.
// Handlers match these with errors.Is and turn them into flash messages;
// anything else is treated as a store failure.
package apperr

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrBadCredentials    = errors.New("incorrect username or password")
	ErrUnknownRole       = errors.New("unknown role")

	// fleet registry
	ErrDuplicateRegistration = errors.New("aircraft registration already exists")
	ErrDuplicatePartNumber   = errors.New("part number already registered")
)
