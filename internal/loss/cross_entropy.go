package loss

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/nn"
)

// CrossEntropyLoss is logistic regression.
//
//	z     = X·W + b
//	p     = σ(z)
//	Loss  = mean(−[y·log p + (1−y)·log(1−p)]) + (reg/2)·‖W‖²
//	∂L/∂W = Xᵗ(p − y) / N + reg·W
//	∂L/∂b = Σ(p − y) / N
//
// The log terms are evaluated as softplus(∓z), which equals −log σ(±z)
// without ever forming σ(z) = 0 or 1, so the loss stays finite for any
// finite score.
type CrossEntropyLoss struct{}

// Kind implements Strategy.
func (CrossEntropyLoss) Kind() Kind { return CrossEntropy }

// Loss implements Strategy.
func (CrossEntropyLoss) Loss(w mat.Vector, b float64, x mat.Matrix, y mat.Vector, reg float64) float64 {
	n := checkRows(x, y)
	z := nn.Forward(w, b, x).RawVector().Data

	var sum float64
	for i, zi := range z {
		yi := y.AtVec(i)
		// −log σ(z) = softplus(−z), −log(1−σ(z)) = softplus(z)
		if yi != 0 {
			sum += yi * Softplus(-zi)
		}
		if yi != 1 {
			sum += (1 - yi) * Softplus(zi)
		}
	}
	return sum/float64(n) + l2(w, reg)
}

// Gradient implements Strategy.
func (CrossEntropyLoss) Gradient(w mat.Vector, b float64, x mat.Matrix, y mat.Vector, reg float64) (*mat.VecDense, float64) {
	n := checkRows(x, y)
	d := sigmoidVec(nn.Forward(w, b, x))
	d.SubVec(d, y)

	gradB := floats.Sum(d.RawVector().Data) / float64(n)
	return weightGradient(x, d, w, reg), gradB
}

// Predict implements Strategy. The output is the probability of class 1.
func (CrossEntropyLoss) Predict(w mat.Vector, b float64, x mat.Matrix) *mat.VecDense {
	return sigmoidVec(nn.Forward(w, b, x))
}

// Sigmoid is the logistic function 1 / (1 + e^−z), evaluated so that
// exp never overflows.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Softplus returns log(1 + e^z) without overflow for large z.
func Softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

// sigmoidVec applies Sigmoid to v in place and returns it.
func sigmoidVec(v *mat.VecDense) *mat.VecDense {
	raw := v.RawVector().Data
	for i, z := range raw {
		raw[i] = Sigmoid(z)
	}
	return v
}
