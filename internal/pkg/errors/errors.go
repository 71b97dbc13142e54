package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnnormalizable marks input that cannot even be coerced into a guide document.
	ErrUnnormalizable = errors.New("document cannot be normalized")
)
