package train

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/linclass/internal/loss"
)

// Logger receives per-iteration diagnostics. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Config holds the hyperparameters of one training run.
type Config struct {
	LearningRate  float64   // Step size α, must be > 0
	MaxIterations int       // Upper bound on iterations, must be > 0
	Reg           float64   // L2 penalty weight, must be >= 0
	Tolerance     float64   // Stop when the train loss improves by less than this
	Loss          loss.Kind // Loss strategy, fixed for the run
	Logger        Logger    // Optional; nil disables diagnostics
}

// DefaultConfig returns the settings of the reference notMNIST run.
func DefaultConfig() Config {
	return Config{
		LearningRate:  0.005,
		MaxIterations: 5000,
		Reg:           0,
		Tolerance:     1e-7,
		Loss:          loss.SquaredError,
	}
}

// Validate reports ErrInvalidConfiguration for settings that cannot run.
//
// Tolerance may be any value, including ±Inf: +Inf stops after the first
// recorded iteration and -Inf never stops early.
func (c Config) Validate() error {
	switch {
	case !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 1):
		return errors.Wrapf(ErrInvalidConfiguration, "learning rate %v", c.LearningRate)
	case c.MaxIterations <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "max iterations %d", c.MaxIterations)
	case !(c.Reg >= 0) || math.IsInf(c.Reg, 1):
		return errors.Wrapf(ErrInvalidConfiguration, "regularization %v", c.Reg)
	case math.IsNaN(c.Tolerance):
		return errors.Wrap(ErrInvalidConfiguration, "tolerance is NaN")
	}
	if _, err := loss.New(c.Loss); err != nil {
		return errors.Wrapf(ErrInvalidConfiguration, "%v", err)
	}
	return nil
}
