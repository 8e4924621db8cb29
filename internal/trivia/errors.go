package trivia

import "errors"

// Failure kinds returned by the question service and repositories.
// Callers match them with errors.Is; messages carry the detail.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrOutOfRange      = errors.New("out of range")
)
