package epidemic

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a negative rate, a negative initial
	// count or an unusable run configuration.
	ErrInvalidParameter = errors.New("epidemic: invalid parameter")

	// ErrInvariantViolation indicates a step produced a negative count or
	// changed the total population.
	ErrInvariantViolation = errors.New("epidemic: invariant violation")
)

// ParameterError wraps ErrInvalidParameter with the offending field.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s = %g (%s)", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// InvariantError wraps ErrInvariantViolation with simulation context.
type InvariantError struct {
	Step   int
	Time   float64
	Label  string
	Value  int64
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: step %d (t=%.4f): %s = %d (%s)",
		ErrInvariantViolation, e.Step, e.Time, e.Label, e.Value, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// CheckRate reports a ParameterError for a rate that is negative, NaN or
// infinite. Zero disables the transition.
func CheckRate(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &ParameterError{Field: field, Value: v, Reason: "rate must be finite and non-negative"}
	}
	return nil
}
