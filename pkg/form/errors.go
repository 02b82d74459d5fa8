package form

import "errors"

var (
	// ErrUnknownField is returned when an operation names a field that was not
	// configured when the form was built.
	ErrUnknownField = errors.New("form: unknown field")

	// ErrInvalidConfig reports a field configuration rejected by New.
	ErrInvalidConfig = errors.New("form: invalid config")
)
