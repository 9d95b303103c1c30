// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the update rule for training linear classifiers.
//
// # Overview
//
// This package contains:
//   - GradientDescent: full-batch descent with a fixed learning rate
//   - Optimizer interface for custom update rules
//
// Each step computes
//
//	W = W - lr * gradW
//	b = b - lr * gradB
//
// and returns the result as a new model.
//
// # Basic Usage
//
//	opt, _ := optim.NewGradientDescent(optim.Config{LR: 0.005})
//	for i := 0; i < iterations; i++ {
//	    gradW, gradB := strategy.Gradient(model.W, model.B, x, y, reg)
//	    model = opt.Step(model, gradW, gradB)
//	}
package optim
