package serialization

import (
	"fmt"
	"strings"

	"github.com/sbinet/npyio/npy"
	"github.com/sbinet/npyio/npz"
)

// Archive is an open .npz file.
type Archive struct {
	r *npz.Reader
}

// OpenArchive opens the .npz file at path.
func OpenArchive(path string) (*Archive, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Archive{r: r}, nil
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.r.Close()
}

// Keys lists the array names in the archive.
func (a *Archive) Keys() []string {
	return a.r.Keys()
}

// Has reports whether the archive contains an array called name.
func (a *Archive) Has(name string) bool {
	_, ok := a.key(name)
	return ok
}

// Array reads the named array as float64 values in C order, together
// with its shape. Integer, unsigned, float and bool dtypes are accepted.
func (a *Archive) Array(name string) ([]float64, []int, error) {
	key, ok := a.key(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q (keys %v)", ErrMissingArray, name, a.Keys())
	}

	hdr := a.r.Header(key)
	if hdr == nil {
		return nil, nil, fmt.Errorf("%w: %q has no header", ErrMissingArray, name)
	}
	if hdr.Descr.Fortran && len(hdr.Descr.Shape) > 1 {
		return nil, nil, fmt.Errorf("%w: %q", ErrFortranOrder, name)
	}
	if len(hdr.Descr.Shape) == 0 {
		return nil, nil, fmt.Errorf("%w: %q is a scalar", ErrInvalidShape, name)
	}

	values, err := a.read(key, hdr)
	if err != nil {
		return nil, nil, fmt.Errorf("read %q: %w", name, err)
	}
	return values, append([]int(nil), hdr.Descr.Shape...), nil
}

// key matches name against archive entries with or without the ".npy" suffix.
func (a *Archive) key(name string) (string, bool) {
	for _, k := range a.r.Keys() {
		if k == name || strings.TrimSuffix(k, ".npy") == name {
			return k, true
		}
	}
	return "", false
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func (a *Archive) read(key string, hdr *npy.Header) ([]float64, error) {
	// Descr.Type is e.g. "<f8" or "|u1"; drop the byte-order mark.
	switch dtype := strings.TrimLeft(hdr.Descr.Type, "<>|="); dtype {
	case "b1":
		var raw []bool
		if err := a.r.Read(key, &raw); err != nil {
			return nil, err
		}
		out := make([]float64, len(raw))
		for i, v := range raw {
			if v {
				out[i] = 1
			}
		}
		return out, nil
	case "i1":
		return readAs[int8](a.r, key)
	case "i2":
		return readAs[int16](a.r, key)
	case "i4":
		return readAs[int32](a.r, key)
	case "i8":
		return readAs[int64](a.r, key)
	case "u1":
		return readAs[uint8](a.r, key)
	case "u2":
		return readAs[uint16](a.r, key)
	case "u4":
		return readAs[uint32](a.r, key)
	case "u8":
		return readAs[uint64](a.r, key)
	case "f4":
		return readAs[float32](a.r, key)
	case "f8":
		return readAs[float64](a.r, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDType, hdr.Descr.Type)
	}
}

func readAs[T number](r *npz.Reader, key string) ([]float64, error) {
	var raw []T
	if err := r.Read(key, &raw); err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out, nil
}
