// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the linear model used for binary classification.
//
// # Overview
//
// A Linear model holds a weight vector W of length D and a scalar bias b.
// Its score for a row x is x · W + b. Models are values: optimizers return
// a new model on every step and never modify the one they were given.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/linclass/nn"
//	)
//
//	func main() {
//	    model := nn.Normal(784, 0.1, 421) // W ~ N(0, 0.01), b = 0
//	    scores := model.Forward(x)        // x: [N, 784]
//	    fmt.Println(model, scores.Len())
//	}
package nn
