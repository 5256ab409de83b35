package storage

import (
	"errors"
	"fmt"
)

// ErrValidation tags user-facing input validation failures. Validation runs
// before any write, so a wrapped ErrValidation guarantees nothing was
// persisted. Callers branch on it with errors.Is to show a notice instead of
// treating it as a server fault.
var ErrValidation = errors.New("validation")

var (
	// ErrWorkoutNameRequired is returned when a workout is saved without a name.
	ErrWorkoutNameRequired = fmt.Errorf("%w: workout name is required", ErrValidation)

	// ErrNoExercises is returned when a workout plan is saved with no named
	// exercise rows.
	ErrNoExercises = fmt.Errorf("%w: at least one exercise is required", ErrValidation)
)
