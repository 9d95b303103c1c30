// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides the squared-error and cross-entropy losses for
// binary linear classification.
//
// Example:
//
//	s, err := loss.New(loss.CrossEntropy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l := s.Loss(model.W, model.B, x, y, reg)
//	gradW, gradB := s.Gradient(model.W, model.B, x, y, reg)
package loss

import (
	"github.com/born-ml/linclass/internal/loss"
)

// Kind selects a loss strategy.
type Kind = loss.Kind

// Supported loss kinds.
const (
	SquaredError = loss.SquaredError
	CrossEntropy = loss.CrossEntropy
)

// Strategy is a loss/gradient pair with its output transform.
type Strategy = loss.Strategy

// SquaredErrorLoss is least-squares regression onto {0, 1} labels.
type SquaredErrorLoss = loss.SquaredErrorLoss

// CrossEntropyLoss is logistic regression.
type CrossEntropyLoss = loss.CrossEntropyLoss

// ErrUnknownKind is returned for an unrecognised loss kind.
var ErrUnknownKind = loss.ErrUnknownKind

// New returns the strategy for kind.
func New(kind Kind) (Strategy, error) {
	return loss.New(kind)
}

// ParseKind converts "mse" or "ce" (or their long forms) into a Kind.
func ParseKind(name string) (Kind, error) {
	return loss.ParseKind(name)
}

// Sigmoid is the logistic function.
func Sigmoid(z float64) float64 {
	return loss.Sigmoid(z)
}
