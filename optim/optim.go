// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/linclass/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// ErrInvalidLearningRate is returned when LR is not a positive finite number.
var ErrInvalidLearningRate = optim.ErrInvalidLearningRate

// GradientDescent represents full-batch gradient descent with a fixed step.
type GradientDescent = optim.GradientDescent

// NewGradientDescent creates a new gradient descent optimizer.
//
// Example:
//
//	opt, err := optim.NewGradientDescent(optim.Config{LR: 0.005})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	next := opt.Step(model, gradW, gradB)
func NewGradientDescent(config Config) (*GradientDescent, error) {
	return optim.NewGradientDescent(config)
}
