package dataset

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/linclass/internal/serialization"
)

// Array names expected in the archive.
const (
	ImagesKey = "images"
	LabelsKey = "labels"
)

// Load reads a NumPy .npz archive holding an "images" array (N×H×W or N×D)
// and a "labels" array (N), then runs Build.
func Load(path string, cfg Config) (*Splits, error) {
	raw, err := ReadArchive(path)
	if err != nil {
		return nil, err
	}
	return Build(raw, cfg)
}

// ReadArchive reads the unfiltered images and labels from a .npz archive.
// Every failure, including a missing file, is reported as ErrDataFormat.
func ReadArchive(path string) (Raw, error) {
	ar, err := serialization.OpenArchive(path)
	if err != nil {
		return Raw{}, dataFormat(err)
	}
	defer ar.Close()

	pixels, imgShape, err := ar.Array(ImagesKey)
	if err != nil {
		return Raw{}, dataFormat(err)
	}
	values, lblShape, err := ar.Array(LabelsKey)
	if err != nil {
		return Raw{}, dataFormat(err)
	}

	if len(imgShape) < 2 {
		return Raw{}, errors.Wrapf(ErrDataFormat, "images shape %v: want at least 2 dimensions", imgShape)
	}
	n := imgShape[0]
	if len(lblShape) != 1 || len(values) != n {
		return Raw{}, errors.Wrapf(ErrDataFormat, "images shape %v does not align with labels shape %v", imgShape, lblShape)
	}

	labels := make([]int, n)
	for i, v := range values {
		if v != math.Trunc(v) {
			return Raw{}, errors.Wrapf(ErrDataFormat, "label %d is not an integer: %v", i, v)
		}
		labels[i] = int(v)
	}

	dim := 1
	for _, s := range imgShape[1:] {
		dim *= s
	}
	return Raw{Pixels: pixels, Dim: dim, Labels: labels}, nil
}

// dataFormat tags err with ErrDataFormat while keeping it in the chain.
func dataFormat(err error) error {
	return errors.WithStack(fmt.Errorf("%w: %w", ErrDataFormat, err))
}
