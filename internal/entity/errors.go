package entity

import "errors"

// Domain errors
var (
	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidRole      = errors.New("invalid message role")

	// Provider errors
	ErrProviderFailure = errors.New("completion provider failure")
	ErrEmptyCompletion = errors.New("completion provider returned no choices")
	ErrUnknownProvider = errors.New("unknown completion provider")
)
