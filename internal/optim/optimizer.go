// Package optim implements the parameter update rule used by the training loop.
//
// This package provides:
//   - Optimizer interface: one update step on a linear model
//   - GradientDescent: full-batch, fixed-step gradient descent
//
// Example usage:
//
//	opt, err := optim.NewGradientDescent(optim.Config{LR: 0.005})
//	if err != nil {
//	    return err
//	}
//
//	for i := range iterations {
//	    gradW, gradB := strategy.Gradient(model.W, model.B, x, y, reg)
//	    model = opt.Step(model, gradW, gradB)
//	}
package optim

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/nn"
)

// ErrInvalidLearningRate is returned for a learning rate that is not a
// positive finite number.
var ErrInvalidLearningRate = errors.New("learning rate must be positive and finite")

// Optimizer is the base interface for update rules.
//
// Optimizers never modify the model they are given. Step returns the
// updated model as a new value so earlier parameters stay valid.
type Optimizer interface {
	// Step applies one update using the gradient of the loss with respect
	// to W and b, and returns the new model.
	Step(m nn.Linear, gradW mat.Vector, gradB float64) nn.Linear

	// LR returns the learning rate.
	LR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
