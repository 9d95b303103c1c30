package serialization

import (
	"errors"
	"math"
	"testing"
)

// TestComputeChecksum verifies SHA-256 checksum computation.
func TestComputeChecksum(t *testing.T) {
	w := []float64{1, 2, 3}
	checksum1 := ComputeChecksum(w, 0.5)
	checksum2 := ComputeChecksum([]float64{1, 2, 3}, 0.5)

	// Same parameters should produce same checksum
	if checksum1 != checksum2 {
		t.Error("Checksums should match for identical parameters")
	}

	// A different bias or weight should produce a different checksum
	if checksum1 == ComputeChecksum(w, 0.25) {
		t.Error("Checksums should differ for different bias")
	}
	if checksum1 == ComputeChecksum([]float64{1, 2, 3.0000001}, 0.5) {
		t.Error("Checksums should differ for different weights")
	}

	// Weight/bias boundary is part of the hash input
	if ComputeChecksum([]float64{1}, 2) == ComputeChecksum([]float64{1, 2}, 0) {
		t.Error("Checksums should differ when values shift between W and b")
	}
}

// TestComputeChecksum_NegativeZero verifies that the raw bit pattern is hashed.
func TestComputeChecksum_NegativeZero(t *testing.T) {
	if ComputeChecksum(nil, 0) == ComputeChecksum(nil, math.Copysign(0, -1)) {
		t.Error("Checksums should differ for +0 and -0")
	}
}

// TestValidateChecksum verifies checksum validation.
func TestValidateChecksum(t *testing.T) {
	sum := ComputeChecksum([]float64{1}, 1)

	if err := ValidateChecksum(sum, sum); err != nil {
		t.Errorf("ValidateChecksum should succeed for matching checksums: %v", err)
	}

	other := sum
	other[0] ^= 0xff
	if err := ValidateChecksum(sum, other); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got %v", err)
	}
}
