package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction errors
	ErrShapeMismatch      = errors.New("outcome and probability vectors differ in length")
	ErrInvalidProbability = errors.New("invalid probability")
	ErrUnknownFamily      = errors.New("unknown distribution family")
	ErrInvalidParameters  = errors.New("invalid family parameters")
	ErrIndexOutOfRange    = errors.New("position out of range")

	// Query errors
	ErrDivisionByZero   = errors.New("conditional probability undefined: condition has zero probability")
	ErrNoJointAvailable = errors.New("no joint distribution available")
	ErrEmptySample      = errors.New("empty sample set")
)

// Error constructors with context
func NewShapeMismatchError(outcomes, probabilities int) error {
	return fmt.Errorf("%w: %d outcomes vs %d probabilities", ErrShapeMismatch, outcomes, probabilities)
}

func NewInvalidProbabilityError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProbability, reason)
}

func NewUnknownFamilyError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

func NewInvalidParametersError(family, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameters, family, reason)
}

func NewIndexOutOfRangeError(position, arity int) error {
	return fmt.Errorf("%w: position %d in joint of arity %d", ErrIndexOutOfRange, position, arity)
}

// Error checking helpers
func IsConstructionError(err error) bool {
	return errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvalidProbability) ||
		errors.Is(err, ErrUnknownFamily) ||
		errors.Is(err, ErrInvalidParameters)
}

func IsQueryError(err error) bool {
	return errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrNoJointAvailable) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrEmptySample)
}
