package serialization

import "errors"

// Common errors.
var (
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
	ErrMissingArray     = errors.New("array not found in archive")
	ErrUnsupportedDType = errors.New("unsupported array dtype")
	ErrFortranOrder     = errors.New("fortran-ordered arrays are not supported")
	ErrInvalidShape     = errors.New("invalid array shape")
)
