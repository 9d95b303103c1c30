package train

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	// ErrInvalidConfiguration is returned before the first iteration when
	// the run cannot start.
	ErrInvalidConfiguration = errors.New("invalid training configuration")

	// ErrNumericInstability is returned when a loss becomes NaN or infinite.
	ErrNumericInstability = errors.New("numeric instability")
)

// InstabilityError reports where a non-finite loss appeared.
type InstabilityError struct {
	Iteration int     // Iteration index, starting at 0
	Split     string  // "train", "valid" or "test"
	Loss      float64 // Offending value
}

// Error implements the error interface.
func (e *InstabilityError) Error() string {
	return fmt.Sprintf("%v: %s loss is %v at iteration %d", ErrNumericInstability, e.Split, e.Loss, e.Iteration)
}

// Unwrap makes errors.Is(err, ErrNumericInstability) hold.
func (e *InstabilityError) Unwrap() error {
	return ErrNumericInstability
}
