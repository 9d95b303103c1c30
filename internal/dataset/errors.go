package dataset

import "github.com/pkg/errors"

// Common errors.
var (
	// ErrDataFormat reports a malformed or undersized archive.
	ErrDataFormat = errors.New("malformed dataset")

	// ErrInvalidConfig reports a Config that cannot produce three splits.
	ErrInvalidConfig = errors.New("invalid dataset config")
)
