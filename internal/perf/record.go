// Package perf records per-iteration loss and accuracy during training.
package perf

import (
	"fmt"
	"math"
)

// Series names used by Series and by the saved artifact.
const (
	TrainLoss     = "train_loss"
	ValidLoss     = "valid_loss"
	TestLoss      = "test_loss"
	TrainAccuracy = "train_acc"
	ValidAccuracy = "valid_acc"
	TestAccuracy  = "test_acc"
)

// Names lists the six series in a stable order.
var Names = []string{TrainLoss, ValidLoss, TestLoss, TrainAccuracy, ValidAccuracy, TestAccuracy}

// Entry is one iteration's measurements.
type Entry struct {
	TrainLoss, ValidLoss, TestLoss             float64
	TrainAccuracy, ValidAccuracy, TestAccuracy float64
}

// Record is a fixed-capacity log of six series, one value per iteration.
//
// All series start filled with NaN, meaning "unset". The training loop
// writes index i after iteration i and calls Truncate when it stops early,
// which shortens every series without zero-filling. Accessors return
// copies, so a Record handed to a caller cannot be changed through them.
type Record struct {
	series [6][]float64
	next   int
}

// New creates a record with room for capacity iterations.
func New(capacity int) *Record {
	if capacity < 0 {
		panic(fmt.Sprintf("perf: negative capacity %d", capacity))
	}
	r := &Record{}
	for k := range r.series {
		s := make([]float64, capacity)
		for i := range s {
			s[i] = math.NaN()
		}
		r.series[k] = s
	}
	return r
}

// Set stores e at index i.
//
// Indices must be written in increasing order starting at 0; Set panics
// on an out-of-order or out-of-range index.
func (r *Record) Set(i int, e Entry) {
	if i != r.next {
		panic(fmt.Sprintf("perf: write at index %d, expected %d", i, r.next))
	}
	if i >= r.Len() {
		panic(fmt.Sprintf("perf: index %d out of range [0, %d)", i, r.Len()))
	}
	values := e.values()
	for k := range r.series {
		r.series[k][i] = values[k]
	}
	r.next++
}

// Truncate shortens every series to n entries.
func (r *Record) Truncate(n int) {
	if n < 0 || n > r.Len() {
		panic(fmt.Sprintf("perf: truncate to %d, length %d", n, r.Len()))
	}
	for k := range r.series {
		r.series[k] = r.series[k][:n:n]
	}
	r.next = min(r.next, n)
}

// Len returns the current series length.
func (r *Record) Len() int {
	return len(r.series[0])
}

// Written returns how many entries have been set.
func (r *Record) Written() int {
	return r.next
}

// At returns the entry at index i. Unwritten entries are all NaN.
func (r *Record) At(i int) Entry {
	return Entry{
		TrainLoss:     r.series[0][i],
		ValidLoss:     r.series[1][i],
		TestLoss:      r.series[2][i],
		TrainAccuracy: r.series[3][i],
		ValidAccuracy: r.series[4][i],
		TestAccuracy:  r.series[5][i],
	}
}

// Last returns the most recently written entry.
func (r *Record) Last() (Entry, bool) {
	if r.next == 0 {
		return Entry{}, false
	}
	return r.At(r.next - 1), true
}

// BestValid returns the index with the highest validation accuracy.
// Ties go to the earliest iteration.
func (r *Record) BestValid() (int, bool) {
	best, idx := math.Inf(-1), -1
	for i, v := range r.series[4][:r.next] {
		if v > best {
			best, idx = v, i
		}
	}
	return idx, idx >= 0
}

// TrainLoss returns a copy of the training loss series.
func (r *Record) TrainLoss() []float64 { return clone(r.series[0]) }

// ValidLoss returns a copy of the validation loss series.
func (r *Record) ValidLoss() []float64 { return clone(r.series[1]) }

// TestLoss returns a copy of the test loss series.
func (r *Record) TestLoss() []float64 { return clone(r.series[2]) }

// TrainAccuracy returns a copy of the training accuracy series.
func (r *Record) TrainAccuracy() []float64 { return clone(r.series[3]) }

// ValidAccuracy returns a copy of the validation accuracy series.
func (r *Record) ValidAccuracy() []float64 { return clone(r.series[4]) }

// TestAccuracy returns a copy of the test accuracy series.
func (r *Record) TestAccuracy() []float64 { return clone(r.series[5]) }

// Series returns copies of all six series keyed by name.
func (r *Record) Series() map[string][]float64 {
	out := make(map[string][]float64, len(Names))
	for k, name := range Names {
		out[name] = clone(r.series[k])
	}
	return out
}

// FromSeries rebuilds a fully written record from named series, as read
// back from a saved artifact. All six series must have equal length.
func FromSeries(series map[string][]float64) (*Record, error) {
	n := -1
	r := &Record{}
	for k, name := range Names {
		s, ok := series[name]
		if !ok {
			return nil, fmt.Errorf("perf: missing series %q", name)
		}
		if n >= 0 && len(s) != n {
			return nil, fmt.Errorf("perf: series %q has length %d, want %d", name, len(s), n)
		}
		n = len(s)
		r.series[k] = clone(s)
	}
	r.next = n
	return r, nil
}

func (e Entry) values() [6]float64 {
	return [6]float64{e.TrainLoss, e.ValidLoss, e.TestLoss, e.TrainAccuracy, e.ValidAccuracy, e.TestAccuracy}
}

func clone(s []float64) []float64 {
	return append([]float64(nil), s...)
}
