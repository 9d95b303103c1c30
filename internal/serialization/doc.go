// Package serialization reads and writes NumPy .npz archives.
//
// It serves two purposes:
//   - reading numeric arrays of any NumPy dtype as float64 (datasets)
//   - saving and loading a trained model together with its performance
//     record, so an external plotting tool can consume the run
//
// Artifact layout:
//
//	W          float64[D]   weights
//	b          float64[1]   bias
//	loss_kind  int64[1]     loss.Kind used for training
//	checksum   uint8[32]    SHA-256 of W and b
//	train_loss, valid_loss, test_loss, train_acc, valid_acc, test_acc
//	           float64[T]   per-iteration series, T = completed iterations
//
// Example usage:
//
//	// Save a run
//	err := serialization.Save("model.npz", serialization.Artifact{
//	    Model:  res.Model,
//	    Loss:   cfg.Loss,
//	    Record: res.Record,
//	})
//
//	// Load it back
//	a, err := serialization.Load("model.npz")
package serialization
