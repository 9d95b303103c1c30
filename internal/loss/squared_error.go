package loss

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/nn"
)

// SquaredErrorLoss is least-squares regression onto the {0, 1} labels.
//
//	r     = X·W + b − Y
//	Loss  = ‖r‖² / 2N + (reg/2)·‖W‖²
//	∂L/∂W = Xᵗr / N + reg·W
//	∂L/∂b = Σr / N
type SquaredErrorLoss struct{}

// Kind implements Strategy.
func (SquaredErrorLoss) Kind() Kind { return SquaredError }

// Loss implements Strategy.
func (SquaredErrorLoss) Loss(w mat.Vector, b float64, x mat.Matrix, y mat.Vector, reg float64) float64 {
	r := residuals(w, b, x, y)
	n := float64(r.Len())
	return mat.Dot(r, r)/(2*n) + l2(w, reg)
}

// Gradient implements Strategy.
func (SquaredErrorLoss) Gradient(w mat.Vector, b float64, x mat.Matrix, y mat.Vector, reg float64) (*mat.VecDense, float64) {
	r := residuals(w, b, x, y)
	n := float64(r.Len())
	gradB := floats.Sum(r.RawVector().Data) / n
	return weightGradient(x, r, w, reg), gradB
}

// Predict implements Strategy. The linear score is the output.
func (SquaredErrorLoss) Predict(w mat.Vector, b float64, x mat.Matrix) *mat.VecDense {
	return nn.Forward(w, b, x)
}

// residuals returns X·W + b − Y.
func residuals(w mat.Vector, b float64, x mat.Matrix, y mat.Vector) *mat.VecDense {
	checkRows(x, y)
	r := nn.Forward(w, b, x)
	r.SubVec(r, y)
	return r
}
