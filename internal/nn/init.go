package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Zeros creates a model with all weights and the bias set to zero.
func Zeros(dim int) Linear {
	return Linear{W: mat.NewVecDense(dim, nil), B: 0}
}

// Normal creates a model with weights drawn from N(0, std²) and a zero bias.
//
// The draw is fully determined by seed, so two calls with the same
// arguments return identical models.
//
// Parameters:
//   - dim: Feature dimension D
//   - std: Standard deviation of the weight distribution
//   - seed: PRNG seed
func Normal(dim int, std float64, seed uint64) Linear {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	data := make([]float64, dim)
	for i := range data {
		data[i] = rng.NormFloat64() * std
	}
	return Linear{W: mat.NewVecDense(dim, data), B: 0}
}
