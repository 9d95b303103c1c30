package optim

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/nn"
)

// GradientDescent takes a fixed step along the negative gradient.
//
// Update rule:
//
//	W = W + lr * (-gradW)
//	b = b + lr * (-gradB)
//
// The step size never changes over a run.
type GradientDescent struct {
	lr float64
}

// NewGradientDescent creates a gradient descent optimizer.
//
// Returns ErrInvalidLearningRate unless config.LR is positive and finite.
func NewGradientDescent(config Config) (*GradientDescent, error) {
	if !(config.LR > 0) || math.IsInf(config.LR, 0) {
		return nil, errors.Wrapf(ErrInvalidLearningRate, "lr=%v", config.LR)
	}
	return &GradientDescent{lr: config.LR}, nil
}

// MustNewGradientDescent is like NewGradientDescent but panics on error.
func MustNewGradientDescent(config Config) *GradientDescent {
	opt, err := NewGradientDescent(config)
	if err != nil {
		panic(err)
	}
	return opt
}

// Step implements Optimizer.
func (g *GradientDescent) Step(m nn.Linear, gradW mat.Vector, gradB float64) nn.Linear {
	w := mat.NewVecDense(m.W.Len(), nil)
	w.AddScaledVec(m.W, -g.lr, gradW)
	return nn.Linear{W: w, B: m.B + g.lr*(-gradB)}
}

// LR implements Optimizer.
func (g *GradientDescent) LR() float64 {
	return g.lr
}
