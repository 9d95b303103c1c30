// Package classify turns model outputs into binary labels and scores them
// against ground truth.
package classify

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/nn"
	"github.com/born-ml/linclass/internal/parallel"
)

// Threshold is the decision boundary on the model output. Outputs at or
// above it are labelled 1.
const Threshold = 0.5

// Result holds the outcome of classifying one split.
type Result struct {
	Predictions   *mat.VecDense // predicted labels in {0, 1}
	Accuracy      float64       // fraction of rows where the prediction equals the label; 0 for an empty split
	Misclassified []bool        // true where the prediction differs from the label
}

// Errors returns the indices of misclassified rows in ascending order.
func (r Result) Errors() []int {
	var idx []int
	for i, bad := range r.Misclassified {
		if bad {
			idx = append(idx, i)
		}
	}
	return idx
}

// Evaluate classifies every row of x with model m using s's output
// transform and compares the result against y.
//
// y is only read. Predictions are written to a new vector.
func Evaluate(m nn.Linear, x mat.Matrix, y mat.Vector, s loss.Strategy) Result {
	return EvaluateWith(m, x, y, s, parallel.DefaultConfig())
}

// EvaluateWith is Evaluate with an explicit parallel configuration.
func EvaluateWith(m nn.Linear, x mat.Matrix, y mat.Vector, s loss.Strategy, cfg parallel.Config) Result {
	n, _ := x.Dims()
	if n != y.Len() {
		panic(fmt.Sprintf("classify: row mismatch: x has %d rows, y has %d", n, y.Len()))
	}

	out := s.Predict(m.W, m.B, x)
	labels := out.RawVector().Data
	miss := make([]bool, n)

	parallel.For(n, func(i int) {
		if labels[i] >= Threshold {
			labels[i] = 1
		} else {
			labels[i] = 0
		}
		miss[i] = labels[i] != y.AtVec(i)
	}, cfg)

	wrong := 0
	for _, bad := range miss {
		if bad {
			wrong++
		}
	}

	acc := 0.0
	if n > 0 {
		acc = float64(n-wrong) / float64(n)
	}
	return Result{Predictions: out, Accuracy: acc, Misclassified: miss}
}
