// Package loss implements the loss/gradient pairs used to train a binary
// linear classifier.
//
// Two strategies share one contract:
//   - SquaredError: least-squares regression onto {0, 1} targets
//   - CrossEntropy: logistic regression with sigmoid outputs
//
// Both are pure functions of (W, b, X, Y, reg). Nothing is cached between
// calls and no argument is modified, so the same Strategy value can score
// the train, validation and test splits in any order.
//
// Example:
//
//	s, _ := loss.New(loss.CrossEntropy)
//	l := s.Loss(m.W, m.B, x, y, reg)
//	gradW, gradB := s.Gradient(m.W, m.B, x, y, reg)
package loss

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrUnknownKind is returned when a loss name or Kind is not recognised.
var ErrUnknownKind = errors.New("unknown loss kind")

// Kind selects a loss strategy. It is fixed for a training run.
type Kind int

// Supported loss kinds.
const (
	SquaredError Kind = iota
	CrossEntropy
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case SquaredError:
		return "mse"
	case CrossEntropy:
		return "ce"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a CLI-style name into a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mse", "squared", "squared-error", "squarederror":
		return SquaredError, nil
	case "ce", "cross-entropy", "crossentropy", "logistic":
		return CrossEntropy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Strategy is a loss/gradient pair plus the output transform used for
// classification.
type Strategy interface {
	// Kind reports which formulation this is.
	Kind() Kind

	// Loss returns the scalar regularised loss over all rows of x.
	Loss(w mat.Vector, b float64, x mat.Matrix, y mat.Vector, reg float64) float64

	// Gradient returns the exact gradient of Loss with respect to w and b.
	// The returned vector is freshly allocated.
	Gradient(w mat.Vector, b float64, x mat.Matrix, y mat.Vector, reg float64) (*mat.VecDense, float64)

	// Predict returns the per-row model output that is thresholded at 0.5
	// to obtain a class label.
	Predict(w mat.Vector, b float64, x mat.Matrix) *mat.VecDense
}

// New returns the strategy for kind.
func New(kind Kind) (Strategy, error) {
	switch kind {
	case SquaredError:
		return SquaredErrorLoss{}, nil
	case CrossEntropy:
		return CrossEntropyLoss{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}

// l2 returns (reg/2)·‖w‖².
func l2(w mat.Vector, reg float64) float64 {
	if reg == 0 {
		return 0
	}
	return reg / 2 * mat.Dot(w, w)
}

// checkRows panics when labels and features disagree on the example count.
func checkRows(x mat.Matrix, y mat.Vector) int {
	n, _ := x.Dims()
	if n != y.Len() {
		panic(fmt.Sprintf("loss: row mismatch: x has %d rows, y has %d", n, y.Len()))
	}
	return n
}

// weightGradient computes Xᵗd/N + reg·w.
func weightGradient(x mat.Matrix, d *mat.VecDense, w mat.Vector, reg float64) *mat.VecDense {
	n, cols := x.Dims()
	grad := mat.NewVecDense(cols, nil)
	if n > 0 {
		grad.MulVec(x.T(), d)
		grad.ScaleVec(1/float64(n), grad)
	}
	if reg != 0 {
		grad.AddScaledVec(grad, reg, w)
	}
	return grad
}
