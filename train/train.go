// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/classify"
	"github.com/born-ml/linclass/internal/dataset"
	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/nn"
	"github.com/born-ml/linclass/internal/perf"
	"github.com/born-ml/linclass/internal/serialization"
	"github.com/born-ml/linclass/internal/train"
)

// Config holds the hyperparameters of one run.
type Config = train.Config

// Logger receives per-iteration diagnostics.
type Logger = train.Logger

// Trainer holds the strategy and update rule chosen for a run.
type Trainer = train.Trainer

// Result is the outcome of a run.
type Result = train.Result

// Status is the terminal state of a run.
type Status = train.Status

// Terminal states.
const (
	MaxIterationsReached = train.MaxIterationsReached
	EarlyStopped         = train.EarlyStopped
)

// InstabilityError reports the iteration and split where a loss stopped
// being finite.
type InstabilityError = train.InstabilityError

// Errors.
var (
	ErrInvalidConfiguration = train.ErrInvalidConfiguration
	ErrNumericInstability   = train.ErrNumericInstability
)

// DefaultConfig returns lr 0.005, 5000 iterations, no regularization,
// tolerance 1e-7 and squared error.
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// New validates cfg and returns a Trainer.
func New(cfg Config) (*Trainer, error) {
	return train.New(cfg)
}

// Run trains from init on data.
func Run(init nn.Linear, data *dataset.Splits, cfg Config) (*Result, error) {
	return train.Run(init, data, cfg)
}

// Performance record

// Record is the per-iteration performance log.
type Record = perf.Record

// Entry is one iteration's measurements.
type Entry = perf.Entry

// Evaluation

// Evaluation is the outcome of classifying one split.
type Evaluation = classify.Result

// Evaluate classifies x with model m and scores it against y.
func Evaluate(m nn.Linear, x mat.Matrix, y mat.Vector, s loss.Strategy) Evaluation {
	return classify.Evaluate(m, x, y, s)
}

// Artifacts

// Artifact is a trained model with its loss kind and performance record.
type Artifact = serialization.Artifact

// Save writes an artifact to an .npz file.
func Save(path string, a Artifact) error {
	return serialization.Save(path, a)
}

// Load reads an artifact written by Save and verifies its checksum.
func Load(path string) (*Artifact, error) {
	return serialization.Load(path)
}
