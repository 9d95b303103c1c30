package loss_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/loss"
)

// tinyProblem is the three-row example worked by hand:
// scores = [3, 5, 7], residuals = [2, 5, 6].
func tinyProblem() (*mat.VecDense, float64, *mat.Dense, *mat.VecDense) {
	w := mat.NewVecDense(2, []float64{1, 1})
	x := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})
	y := mat.NewVecDense(3, []float64{1, 0, 1})
	return w, 1, x, y
}

// randomProblem builds a reproducible dataset with binary labels.
func randomProblem(n, d int, seed uint64) (*mat.VecDense, float64, *mat.Dense, *mat.VecDense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	x := mat.NewDense(n, d, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			x.Set(i, j, rng.Float64())
		}
		if rng.Float64() < 0.5 {
			y.SetVec(i, 1)
		}
	}
	w := mat.NewVecDense(d, nil)
	for j := 0; j < d; j++ {
		w.SetVec(j, rng.NormFloat64()*0.5)
	}
	return w, rng.NormFloat64(), x, y
}

func strategies(t *testing.T) []loss.Strategy {
	t.Helper()
	var out []loss.Strategy
	for _, k := range []loss.Kind{loss.SquaredError, loss.CrossEntropy} {
		s, err := loss.New(k)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func TestSquaredError_WorkedExample(t *testing.T) {
	w, b, x, y := tinyProblem()
	s := loss.SquaredErrorLoss{}

	// (4 + 25 + 36) / (2·3)
	assert.InDelta(t, 65.0/6.0, s.Loss(w, b, x, y, 0), 1e-12)

	gradW, gradB := s.Gradient(w, b, x, y, 0)
	// (2·[1,1] + 5·[2,2] + 6·[3,3]) / 3
	assert.InDeltaSlice(t, []float64{10, 10}, gradW.RawVector().Data, 1e-12)
	assert.InDelta(t, 13.0/3.0, gradB, 1e-12)
}

func TestSquaredError_Regularisation(t *testing.T) {
	w, b, x, y := tinyProblem()
	s := loss.SquaredErrorLoss{}
	reg := 0.5

	// ‖W‖² = 2, so the penalty adds reg/2·2 to the loss and reg·W to gradW.
	assert.InDelta(t, 65.0/6.0+0.5, s.Loss(w, b, x, y, reg), 1e-12)

	gradW, gradB := s.Gradient(w, b, x, y, reg)
	assert.InDeltaSlice(t, []float64{10.5, 10.5}, gradW.RawVector().Data, 1e-12)
	assert.InDelta(t, 13.0/3.0, gradB, 1e-12)
}

func TestGradient_MatchesFiniteDifference(t *testing.T) {
	for _, reg := range []float64{0, 0.3} {
		for _, s := range strategies(t) {
			t.Run(s.Kind().String(), func(t *testing.T) {
				w, b, x, y := randomProblem(20, 5, 11)
				d := w.Len()

				f := func(p []float64) float64 {
					return s.Loss(mat.NewVecDense(d, p[:d]), p[d], x, y, reg)
				}
				point := append(append([]float64{}, w.RawVector().Data...), b)
				numeric := fd.Gradient(nil, f, point, &fd.Settings{Formula: fd.Central, Step: 1e-6})

				gradW, gradB := s.Gradient(w, b, x, y, reg)
				analytic := append(append([]float64{}, gradW.RawVector().Data...), gradB)

				assert.InDeltaSlice(t, numeric, analytic, 1e-6, "reg=%v", reg)
			})
		}
	}
}

func TestLoss_ZeroAtExactFit(t *testing.T) {
	// Squared error: one row with x·W + b == y exactly.
	x := mat.NewDense(1, 2, []float64{0.5, 0.25})
	w := mat.NewVecDense(2, []float64{1, 2})
	y := mat.NewVecDense(1, []float64{1.5})
	assert.Equal(t, 0.0, loss.SquaredErrorLoss{}.Loss(w, 0.5, x, y, 0))

	// Cross entropy: the score saturates the sigmoid in the direction of the label.
	ce := loss.CrossEntropyLoss{}
	xs := mat.NewDense(1, 1, []float64{1})
	assert.Equal(t, 0.0, ce.Loss(mat.NewVecDense(1, []float64{800}), 0, xs, mat.NewVecDense(1, []float64{1}), 0))
	assert.Equal(t, 0.0, ce.Loss(mat.NewVecDense(1, []float64{-800}), 0, xs, mat.NewVecDense(1, []float64{0}), 0))
}

func TestCrossEntropy_FiniteForExtremeScores(t *testing.T) {
	ce := loss.CrossEntropyLoss{}
	x := mat.NewDense(2, 1, []float64{1, -1})
	y := mat.NewVecDense(2, []float64{0, 1})
	w := mat.NewVecDense(1, []float64{1e4})

	l := ce.Loss(w, 0, x, y, 0)
	assert.False(t, math.IsNaN(l) || math.IsInf(l, 0), "loss = %v", l)
	assert.InDelta(t, 1e4, l, 1e-6)

	gradW, gradB := ce.Gradient(w, 0, x, y, 0)
	assert.False(t, math.IsNaN(gradW.AtVec(0)))
	assert.False(t, math.IsNaN(gradB))
}

func TestCrossEntropy_KnownValue(t *testing.T) {
	ce := loss.CrossEntropyLoss{}
	x := mat.NewDense(2, 1, []float64{0, 0})
	y := mat.NewVecDense(2, []float64{1, 0})
	w := mat.NewVecDense(1, []float64{3})

	// All scores are 0, so p = 0.5 everywhere.
	assert.InDelta(t, math.Ln2, ce.Loss(w, 0, x, y, 0), 1e-12)
	gradW, gradB := ce.Gradient(w, 0, x, y, 0)
	assert.InDelta(t, 0, gradW.AtVec(0), 1e-12)
	assert.InDelta(t, 0, gradB, 1e-12)
}

func TestStrategies_DoNotMutateInputs(t *testing.T) {
	for _, s := range strategies(t) {
		w, b, x, y := randomProblem(8, 3, 5)
		wCopy := mat.VecDenseCopyOf(w)
		xCopy := mat.DenseCopyOf(x)
		yCopy := mat.VecDenseCopyOf(y)

		s.Loss(w, b, x, y, 0.1)
		s.Gradient(w, b, x, y, 0.1)
		s.Predict(w, b, x)

		assert.True(t, mat.Equal(w, wCopy), s.Kind().String())
		assert.True(t, mat.Equal(x, xCopy), s.Kind().String())
		assert.True(t, mat.Equal(y, yCopy), s.Kind().String())
	}
}

func TestPredict(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{-2, 0, 2})
	w := mat.NewVecDense(1, []float64{1})

	mse := loss.SquaredErrorLoss{}.Predict(w, 0.25, x)
	assert.Equal(t, []float64{-1.75, 0.25, 2.25}, mse.RawVector().Data)

	ce := loss.CrossEntropyLoss{}.Predict(w, 0, x)
	assert.InDelta(t, loss.Sigmoid(-2), ce.AtVec(0), 1e-15)
	assert.Equal(t, 0.5, ce.AtVec(1))
	assert.InDelta(t, loss.Sigmoid(2), ce.AtVec(2), 1e-15)
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, loss.Sigmoid(0))
	assert.Equal(t, 1.0, loss.Sigmoid(1000))
	assert.Equal(t, 0.0, loss.Sigmoid(-1000))
	assert.InDelta(t, 1-loss.Sigmoid(3), loss.Sigmoid(-3), 1e-15)
}

func TestSoftplus(t *testing.T) {
	assert.InDelta(t, math.Ln2, loss.Softplus(0), 1e-15)
	assert.Equal(t, 1000.0, loss.Softplus(1000))
	assert.Equal(t, 0.0, loss.Softplus(-1000))
	assert.InDelta(t, math.Log1p(math.Exp(2)), loss.Softplus(2), 1e-12)
}

func TestRowMismatchPanics(t *testing.T) {
	x := mat.NewDense(3, 1, nil)
	y := mat.NewVecDense(2, nil)
	w := mat.NewVecDense(1, nil)

	for _, s := range strategies(t) {
		assert.Panics(t, func() { s.Loss(w, 0, x, y, 0) }, s.Kind().String())
		assert.Panics(t, func() { s.Gradient(w, 0, x, y, 0) }, s.Kind().String())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want loss.Kind
	}{
		{"mse", loss.SquaredError},
		{"MSE", loss.SquaredError},
		{"squared-error", loss.SquaredError},
		{"ce", loss.CrossEntropy},
		{" cross-entropy ", loss.CrossEntropy},
		{"logistic", loss.CrossEntropy},
	}
	for _, tt := range tests {
		got, err := loss.ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := loss.ParseKind("hinge")
	assert.True(t, errors.Is(err, loss.ErrUnknownKind))
}

func TestNew_Unknown(t *testing.T) {
	_, err := loss.New(loss.Kind(7))
	assert.ErrorIs(t, err, loss.ErrUnknownKind)
	assert.Equal(t, "Kind(7)", loss.Kind(7).String())
}
