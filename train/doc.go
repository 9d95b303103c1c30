// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs full-batch gradient descent on a linear classifier and
// records loss and accuracy on every split as it goes.
//
// # Overview
//
// A run takes an initial model, the train/validation/test splits and a
// Config. Each iteration computes the train loss and gradient, takes one
// step, then scores all three splits with the updated model. Training stops
// after MaxIterations or as soon as the train loss improves by less than
// Tolerance, whichever comes first.
//
// # Basic Usage
//
//	data, err := dataset.Load("notMNIST.npz", dataset.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := train.DefaultConfig()
//	cfg.Loss = loss.CrossEntropy
//	cfg.Logger = log.Default()
//
//	res, err := train.Run(nn.Normal(data.Dim(), 0.1, 421), data, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Status, res.Record.Len())
package train
