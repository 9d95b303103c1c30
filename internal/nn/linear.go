package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Linear is a single-output linear model: score = x · W + b.
//
// A Linear value is treated as immutable by the training loop. Optimizers
// return a new Linear on every step instead of updating W in place, so a
// model handed to a caller is never changed behind its back.
//
// Example:
//
//	m := nn.Normal(784, 0.1, 421)
//	scores := m.Forward(x) // x: [N, 784], scores: [N]
type Linear struct {
	W *mat.VecDense // [D]
	B float64
}

// NewLinear wraps an existing weight vector and bias.
func NewLinear(w *mat.VecDense, b float64) Linear {
	return Linear{W: w, B: b}
}

// Dim returns the feature dimension D.
func (l Linear) Dim() int {
	if l.W == nil {
		return 0
	}
	return l.W.Len()
}

// Forward computes raw scores for every row of x.
//
// Input shape: [N, D]
// Output shape: [N]
func (l Linear) Forward(x mat.Matrix) *mat.VecDense {
	return Forward(l.W, l.B, x)
}

// Clone returns a deep copy of the model.
func (l Linear) Clone() Linear {
	w := mat.NewVecDense(l.W.Len(), nil)
	w.CopyVec(l.W)
	return Linear{W: w, B: l.B}
}

// String implements fmt.Stringer.
func (l Linear) String() string {
	return fmt.Sprintf("Linear(dim=%d, b=%.6g)", l.Dim(), l.B)
}

// Forward computes X·w + b into a freshly allocated vector.
//
// Panics if the column count of x does not match the length of w.
func Forward(w mat.Vector, b float64, x mat.Matrix) *mat.VecDense {
	rows, cols := x.Dims()
	if cols != w.Len() {
		panic(fmt.Sprintf("nn: feature dimension mismatch: x has %d columns, w has %d", cols, w.Len()))
	}

	scores := mat.NewVecDense(rows, nil)
	scores.MulVec(x, w)
	if b != 0 {
		raw := scores.RawVector().Data
		for i := range raw {
			raw[i] += b
		}
	}
	return scores
}
