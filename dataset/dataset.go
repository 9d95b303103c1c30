// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset loads a two-class subset of a labelled image archive and
// splits it into train, validation and test sets.
//
// Example:
//
//	data, err := dataset.Load("notMNIST.npz", dataset.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(data.Summary())
package dataset

import (
	"github.com/born-ml/linclass/internal/dataset"
)

// Config selects the two classes, the shuffle seed and the split sizes.
type Config = dataset.Config

// Raw is an unfiltered labelled image set.
type Raw = dataset.Raw

// Split is one (features, labels) pair.
type Split = dataset.Split

// Splits holds the train, validation and test splits.
type Splits = dataset.Splits

// Errors.
var (
	ErrDataFormat    = dataset.ErrDataFormat
	ErrInvalidConfig = dataset.ErrInvalidConfig
)

// DefaultConfig returns the notMNIST setup: classes 2 and 9, seed 421,
// 3500 train and 100 validation examples.
func DefaultConfig() Config {
	return dataset.DefaultConfig()
}

// Load reads a .npz archive with "images" and "labels" arrays and splits it.
func Load(path string, cfg Config) (*Splits, error) {
	return dataset.Load(path, cfg)
}

// FromArrays splits in-memory images and labels.
func FromArrays(images [][]float64, labels []int, cfg Config) (*Splits, error) {
	return dataset.FromArrays(images, labels, cfg)
}
