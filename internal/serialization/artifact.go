package serialization

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/nn"
	"github.com/born-ml/linclass/internal/perf"
)

// Array names used by Save and Load.
const (
	WeightsKey  = "W"
	BiasKey     = "b"
	LossKindKey = "loss_kind"
	RegKey      = "reg"
	ChecksumKey = "checksum"
)

// Artifact is a trained model plus the record of how it was trained.
type Artifact struct {
	Model  nn.Linear
	Loss   loss.Kind
	Reg    float64      // L2 strength the model was trained with
	Record *perf.Record // may be nil
}

// Save writes a to path as an .npz archive, replacing any existing file.
func Save(path string, a Artifact) (err error) {
	if a.Model.W == nil {
		return fmt.Errorf("save %s: model has no weights", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()

	w := npz.NewWriter(f)
	weights := mat.Col(nil, 0, a.Model.W)
	sum := ComputeChecksum(weights, a.Model.B)

	arrays := []struct {
		name  string
		value any
	}{
		{WeightsKey, weights},
		{BiasKey, []float64{a.Model.B}},
		{LossKindKey, []int64{int64(a.Loss)}},
		{RegKey, []float64{a.Reg}},
		{ChecksumKey, sum[:]},
	}
	if a.Record != nil {
		series := a.Record.Series()
		for _, name := range perf.Names {
			arrays = append(arrays, struct {
				name  string
				value any
			}{name, series[name]})
		}
	}

	for _, arr := range arrays {
		if err := w.Write(arr.name, arr.value); err != nil {
			return fmt.Errorf("save %s: write %q: %w", path, arr.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads an artifact written by Save and verifies its checksum.
// The Record is nil when the archive holds no series, and Reg is 0 when
// the archive does not store it.
func Load(path string) (*Artifact, error) {
	ar, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	defer ar.Close()

	weights, shape, err := ar.Array(WeightsKey)
	if err != nil {
		return nil, err
	}
	if len(shape) != 1 || len(weights) == 0 {
		return nil, fmt.Errorf("%w: %s has shape %v", ErrInvalidShape, WeightsKey, shape)
	}
	bias, err := scalar(ar, BiasKey)
	if err != nil {
		return nil, err
	}
	kind, err := scalar(ar, LossKindKey)
	if err != nil {
		return nil, err
	}

	stored, _, err := ar.Array(ChecksumKey)
	if err != nil {
		return nil, err
	}
	if len(stored) != 32 {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrInvalidShape, ChecksumKey, len(stored))
	}
	var want [32]byte
	for i, v := range stored {
		want[i] = byte(v)
	}
	if err := ValidateChecksum(ComputeChecksum(weights, bias), want); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	a := &Artifact{
		Model: nn.NewLinear(mat.NewVecDense(len(weights), weights), bias),
		Loss:  loss.Kind(kind),
	}
	if ar.Has(RegKey) {
		if a.Reg, err = scalar(ar, RegKey); err != nil {
			return nil, err
		}
	}
	if !ar.Has(perf.TrainLoss) {
		return a, nil
	}

	series := make(map[string][]float64, len(perf.Names))
	for _, name := range perf.Names {
		values, _, err := ar.Array(name)
		if err != nil {
			return nil, err
		}
		series[name] = values
	}
	if a.Record, err = perf.FromSeries(series); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return a, nil
}

func scalar(ar *Archive, name string) (float64, error) {
	values, _, err := ar.Array(name)
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: %s has %d values, want 1", ErrInvalidShape, name, len(values))
	}
	return values[0], nil
}
