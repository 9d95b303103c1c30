package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LoadCSV reads a Kaggle-style CSV file, then runs Build.
func LoadCSV(path string, cfg Config) (*Splits, error) {
	raw, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return Build(raw, cfg)
}

// ReadCSV reads unfiltered images and labels from a CSV file with a header
// row followed by one example per line:
//
//	label,pixel0,pixel1,...
//	5,0,0,12,...
//
// Every row must have the same number of columns.
func ReadCSV(path string) (Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return Raw{}, dataFormat(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Raw{}, dataFormat(fmt.Errorf("%s: %w", path, err))
	}
	if len(records) < 2 {
		return Raw{}, errors.Wrapf(ErrDataFormat, "%s: empty or missing header", path)
	}
	records = records[1:]

	dim := len(records[0]) - 1
	if dim < 1 {
		return Raw{}, errors.Wrapf(ErrDataFormat, "%s: rows have no pixel columns", path)
	}

	raw := Raw{
		Pixels: make([]float64, 0, len(records)*dim),
		Dim:    dim,
		Labels: make([]int, len(records)),
	}
	for i, rec := range records {
		row := i + 2 // 1-based, after the header
		label, err := strconv.Atoi(rec[0])
		if err != nil {
			return Raw{}, errors.Wrapf(ErrDataFormat, "%s: row %d: label %q", path, row, rec[0])
		}
		raw.Labels[i] = label

		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Raw{}, errors.Wrapf(ErrDataFormat, "%s: row %d, column %d: %q", path, row, j+2, field)
			}
			raw.Pixels = append(raw.Pixels, v)
		}
	}
	return raw, nil
}
