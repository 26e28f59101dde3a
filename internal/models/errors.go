package models

import "errors"

var (
	// ErrUnknownExercise is returned when an operation references an exercise id
	// that does not exist.
	ErrUnknownExercise = errors.New("unknown exercise")

	// ErrInvalidComparison is returned when two sets of different exercises are
	// compared. It indicates a caller bug, not bad data.
	ErrInvalidComparison = errors.New("invalid comparison")

	// ErrMalformedInput is returned when user-entered weight, unit or reps cannot
	// be turned into domain values.
	ErrMalformedInput = errors.New("malformed input")
)
