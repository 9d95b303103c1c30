package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"os"

	"github.com/pkg/errors"
)

// IDX magic numbers for unsigned-byte image and label files.
const (
	idxImagesMagic = 0x00000803
	idxLabelsMagic = 0x00000801
)

// LoadIDX reads an image file and a label file in the MNIST IDX format,
// then runs Build.
func LoadIDX(imagesPath, labelsPath string, cfg Config) (*Splits, error) {
	raw, err := ReadIDX(imagesPath, labelsPath)
	if err != nil {
		return nil, err
	}
	return Build(raw, cfg)
}

// ReadIDX reads unfiltered images and labels from a pair of IDX files.
//
// Image files hold:
//
//	magic number: 0x00000803
//	number of images, rows, cols: 4 bytes each, big endian
//	pixel data: unsigned bytes
//
// Label files hold:
//
//	magic number: 0x00000801
//	number of labels: 4 bytes, big endian
//	label data: unsigned bytes
func ReadIDX(imagesPath, labelsPath string) (Raw, error) {
	pixels, dim, n, err := readIDXImages(imagesPath)
	if err != nil {
		return Raw{}, dataFormat(err)
	}
	labels, err := readIDXLabels(labelsPath)
	if err != nil {
		return Raw{}, dataFormat(err)
	}
	if len(labels) != n {
		return Raw{}, errors.Wrapf(ErrDataFormat, "%d images but %d labels", n, len(labels))
	}
	return Raw{Pixels: pixels, Dim: dim, Labels: labels}, nil
}

func readIDXImages(path string) ([]float64, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var hdr struct{ Magic, Count, Rows, Cols uint32 }
	if err := binary.Read(f, binary.BigEndian, &hdr); err != nil {
		return nil, 0, 0, fmt.Errorf("%s: read header: %w", path, err)
	}
	if hdr.Magic != idxImagesMagic {
		return nil, 0, 0, fmt.Errorf("%s: invalid magic number %#08x, want %#08x", path, hdr.Magic, idxImagesMagic)
	}

	size, err := payloadSize(f, 16, hdr.Count, hdr.Rows, hdr.Cols)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	dim := int(hdr.Rows) * int(hdr.Cols)
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, 0, 0, fmt.Errorf("%s: read %d images: %w", path, hdr.Count, err)
	}

	pixels := make([]float64, len(buf))
	for i, b := range buf {
		pixels[i] = float64(b)
	}
	return pixels, dim, int(hdr.Count), nil
}

func readIDXLabels(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hdr struct{ Magic, Count uint32 }
	if err := binary.Read(f, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	if hdr.Magic != idxLabelsMagic {
		return nil, fmt.Errorf("%s: invalid magic number %#08x, want %#08x", path, hdr.Magic, idxLabelsMagic)
	}

	size, err := payloadSize(f, 8, hdr.Count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("%s: read %d labels: %w", path, hdr.Count, err)
	}

	labels := make([]int, len(buf))
	for i, b := range buf {
		labels[i] = int(b)
	}
	return labels, nil
}

// payloadSize returns the product of dims, the byte count an IDX header
// declares, after checking that the file actually holds that many bytes
// past its header.
func payloadSize(f *os.File, header int64, dims ...uint32) (int, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	avail := uint64(max(fi.Size()-header, 0))

	want := uint64(1)
	for _, d := range dims {
		hi, lo := bits.Mul64(want, uint64(d))
		if hi != 0 || lo > avail {
			return 0, fmt.Errorf("header declares dimensions %v, but only %d payload bytes follow", dims, avail)
		}
		want = lo
	}
	return int(want), nil
}
