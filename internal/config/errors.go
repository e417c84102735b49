package config

import "errors"

var (
	// ErrMissingField is returned when a mandatory value is absent.
	ErrMissingField = errors.New("missing mandatory field")

	// ErrInvalidValue is returned when a value is present but unusable.
	ErrInvalidValue = errors.New("invalid value")
)
