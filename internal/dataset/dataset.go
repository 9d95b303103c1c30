// Package dataset builds the train/validation/test splits for a two-class
// image classification problem.
//
// The pipeline is:
//  1. keep only examples labelled Positive or Negative
//  2. divide pixel intensities by Scale (255 for 8-bit images)
//  3. relabel Positive as 1 and Negative as 0
//  4. shuffle with a PRNG seeded from Seed
//  5. cut contiguous train, validation and test ranges
//
// The same Config and input always yield the same splits.
package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/parallel"
)

// Config selects the two classes and the split sizes.
type Config struct {
	Positive  int     // Class relabelled as 1
	Negative  int     // Class relabelled as 0
	Seed      uint64  // Shuffle seed
	TrainSize int     // Rows in the training split
	ValidSize int     // Rows in the validation split; the test split gets the rest
	Scale     float64 // Pixel values are divided by Scale
}

// DefaultConfig returns the notMNIST "C versus J" setup.
func DefaultConfig() Config {
	return Config{
		Positive:  2,
		Negative:  9,
		Seed:      421,
		TrainSize: 3500,
		ValidSize: 100,
		Scale:     255,
	}
}

// Validate checks that the config can produce three non-empty splits.
func (c Config) Validate() error {
	switch {
	case c.Positive == c.Negative:
		return errors.Wrapf(ErrInvalidConfig, "positive and negative class are both %d", c.Positive)
	case c.TrainSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "train size %d", c.TrainSize)
	case c.ValidSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "validation size %d", c.ValidSize)
	case !(c.Scale > 0):
		return errors.Wrapf(ErrInvalidConfig, "scale %v", c.Scale)
	}
	return nil
}

// Raw is an unfiltered labelled image set with every image flattened to
// Dim values, stored row-major in Pixels.
type Raw struct {
	Pixels []float64
	Dim    int
	Labels []int
}

// Len returns the number of examples.
func (r Raw) Len() int {
	return len(r.Labels)
}

// Split is one (features, labels) pair. An empty split has nil X and Y.
type Split struct {
	X     *mat.Dense    // [N, D], values in [0, 1] for well-formed input
	Y     *mat.VecDense // [N], values in {0, 1}
	Index []int         // position of each row in the unfiltered input
}

// Len returns the number of rows.
func (s Split) Len() int {
	if s.Y == nil {
		return 0
	}
	return s.Y.Len()
}

// Dim returns the feature dimension.
func (s Split) Dim() int {
	if s.X == nil {
		return 0
	}
	_, c := s.X.Dims()
	return c
}

// Positives returns the number of rows labelled 1.
func (s Split) Positives() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if s.Y.AtVec(i) == 1 {
			n++
		}
	}
	return n
}

// Splits is the three-way partition of the filtered dataset.
type Splits struct {
	Train Split
	Valid Split
	Test  Split
}

// Dim returns the feature dimension shared by all splits.
func (s *Splits) Dim() int {
	return s.Train.Dim()
}

// Summary describes the split sizes and class balance.
func (s *Splits) Summary() string {
	return fmt.Sprintf("train=%d (pos %d) valid=%d (pos %d) test=%d (pos %d) dim=%d",
		s.Train.Len(), s.Train.Positives(),
		s.Valid.Len(), s.Valid.Positives(),
		s.Test.Len(), s.Test.Positives(),
		s.Dim())
}

// FromArrays builds splits from per-example images and labels.
func FromArrays(images [][]float64, labels []int, cfg Config) (*Splits, error) {
	if len(images) != len(labels) {
		return nil, errors.Wrapf(ErrDataFormat, "%d images but %d labels", len(images), len(labels))
	}
	if len(images) == 0 {
		return nil, errors.Wrap(ErrDataFormat, "no examples")
	}

	dim := len(images[0])
	pixels := make([]float64, 0, dim*len(images))
	for i, img := range images {
		if len(img) != dim {
			return nil, errors.Wrapf(ErrDataFormat, "image %d has %d values, want %d", i, len(img), dim)
		}
		pixels = append(pixels, img...)
	}
	return Build(Raw{Pixels: pixels, Dim: dim, Labels: labels}, cfg)
}

// Build runs the filter, normalise, relabel, shuffle and split pipeline.
func Build(raw Raw, cfg Config) (*Splits, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if raw.Dim <= 0 {
		return nil, errors.Wrapf(ErrDataFormat, "feature dimension %d", raw.Dim)
	}
	if len(raw.Pixels) != raw.Len()*raw.Dim {
		return nil, errors.Wrapf(ErrDataFormat, "%d pixel values for %d examples of dimension %d",
			len(raw.Pixels), raw.Len(), raw.Dim)
	}

	keep := make([]int, 0, raw.Len())
	for i, l := range raw.Labels {
		if l == cfg.Positive || l == cfg.Negative {
			keep = append(keep, i)
		}
	}

	need := cfg.TrainSize + cfg.ValidSize
	if len(keep) < need {
		return nil, errors.Wrapf(ErrDataFormat,
			"%d examples of classes %d and %d, need at least %d",
			len(keep), cfg.Positive, cfg.Negative, need)
	}

	//nolint:gosec // Reproducible shuffle, not security-critical
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	rng.Shuffle(len(keep), func(i, j int) {
		keep[i], keep[j] = keep[j], keep[i]
	})

	return &Splits{
		Train: gather(raw, keep[:cfg.TrainSize], cfg),
		Valid: gather(raw, keep[cfg.TrainSize:need], cfg),
		Test:  gather(raw, keep[need:], cfg),
	}, nil
}

// gather copies the rows at idx into a new normalised split. An empty idx
// yields a split with nil X and Y.
func gather(raw Raw, idx []int, cfg Config) Split {
	n, d := len(idx), raw.Dim
	if n == 0 {
		return Split{Index: []int{}}
	}
	data := make([]float64, n*d)
	labels := make([]float64, n)

	parallel.Range(n, func(lo, hi int) {
		for row := lo; row < hi; row++ {
			src := raw.Pixels[idx[row]*d : (idx[row]+1)*d]
			floats.ScaleTo(data[row*d:(row+1)*d], 1/cfg.Scale, src)
			if raw.Labels[idx[row]] == cfg.Positive {
				labels[row] = 1
			}
		}
	}, parallel.DefaultConfig())

	return Split{
		X:     mat.NewDense(n, d, data),
		Y:     mat.NewVecDense(n, labels),
		Index: append([]int(nil), idx...),
	}
}
