// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/nn"
)

// Linear is a single-output linear model: score = x · W + b.
type Linear = nn.Linear

// NewLinear wraps an existing weight vector and bias.
//
// Example:
//
//	w := mat.NewVecDense(784, nil)
//	model := nn.NewLinear(w, 0)
func NewLinear(w *mat.VecDense, b float64) Linear {
	return nn.NewLinear(w, b)
}

// Initializers

// Zeros creates a model with every parameter set to zero.
func Zeros(dim int) Linear {
	return nn.Zeros(dim)
}

// Normal creates a model with weights drawn from N(0, std²) and zero bias.
// The same seed always yields the same weights.
func Normal(dim int, std float64, seed uint64) Linear {
	return nn.Normal(dim, std, seed)
}

// Forward computes X·w + b for every row of x.
func Forward(w mat.Vector, b float64, x mat.Matrix) *mat.VecDense {
	return nn.Forward(w, b, x)
}
