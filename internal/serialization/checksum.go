package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// ComputeChecksum computes the SHA-256 checksum of model parameters,
// hashing the little-endian bytes of every weight followed by the bias.
func ComputeChecksum(w []float64, b float64) [32]byte {
	h := sha256.New()
	var buf [8]byte
	for _, v := range w {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(b))
	h.Write(buf[:])

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
