package stochastic

import (
	"errors"
	"fmt"
)

// Validation errors returned by the generators.
var (
	// ErrShape indicates a matrix or vector whose dimensions do not match the state set.
	ErrShape = errors.New("stochastic: shape mismatch")

	// ErrNotStochastic indicates a row that is not a probability distribution.
	ErrNotStochastic = errors.New("stochastic: row is not a probability distribution")

	// ErrDuplicateState indicates a repeated or empty state label.
	ErrDuplicateState = errors.New("stochastic: duplicate or empty state label")

	// ErrUnknownState indicates a state label outside the state set.
	ErrUnknownState = errors.New("stochastic: unknown state")

	// ErrProbability indicates negative move probabilities or a sum other than 1.
	ErrProbability = errors.New("stochastic: probabilities must be non-negative and sum to 1")

	// ErrRate indicates a non-positive arrival rate.
	ErrRate = errors.New("stochastic: rate must be positive")

	// ErrScale indicates a negative or non-finite diffusion scale.
	ErrScale = errors.New("stochastic: scale must be non-negative")
)

// Domain errors returned by the generators.
var (
	// ErrHorizon indicates a negative or non-finite observation horizon.
	ErrHorizon = errors.New("stochastic: horizon must be non-negative")

	// ErrSteps indicates a negative step count.
	ErrSteps = errors.New("stochastic: step count must be non-negative")

	// ErrDimension indicates a dimensionality outside 1..3.
	ErrDimension = errors.New("stochastic: dimension must be between 1 and 3")
)

// ValidationError names the input that failed validation.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s=%v)", e.Err.Error(), e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid builds a *ValidationError wrapping err.
func Invalid(err error, field string, value any) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}
