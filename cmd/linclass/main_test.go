package main

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linclass/internal/dataset"
	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/serialization"
)

// writeArchive writes n 2x2 images to a .npz file. Label 2 images are
// bright on the left column, label 9 on the right, label 5 uniformly grey.
func writeArchive(t *testing.T, n int) string {
	t.Helper()
	pixels := make([]uint8, n*4)
	labels := make([]int64, n)
	for i := 0; i < n; i++ {
		var px [4]uint8
		switch i % 3 {
		case 0:
			labels[i] = 2
			px = [4]uint8{255, 0, 255, 0}
		case 1:
			labels[i] = 9
			px = [4]uint8{0, 255, 0, 255}
		default:
			labels[i] = 5
			px = [4]uint8{128, 128, 128, 128}
		}
		copy(pixels[i*4:], px[:])
	}

	path := filepath.Join(t.TempDir(), "data.npz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, b := range map[string][]byte{
		"images": npy("|u1", fmt.Sprintf("%d, 2, 2", n), pixels),
		"labels": npy("<i8", fmt.Sprintf("%d,", n), labels),
	} {
		w, err := zw.Create(name + ".npy")
		require.NoError(t, err)
		_, err = w.Write(b)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// npy encodes data as a .npy v1.0 array with the given shape tuple body.
func npy(descr, shape string, data any) []byte {
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, shape)
	header += strings.Repeat(" ", (64-(11+len(header))%64)%64) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	_ = binary.Write(&buf, binary.LittleEndian, data)
	return buf.Bytes()
}

func newLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

func dataArgs(path string) []string {
	return []string{"-data", path, "-train-size", "40", "-valid-size", "10"}
}

func TestRun_TrainThenEval(t *testing.T) {
	data := writeArchive(t, 90)
	model := filepath.Join(t.TempDir(), "model.npz")

	var out bytes.Buffer
	logger, logs := newLogger()
	args := append([]string{"train", "-loss", "ce", "-lr", "0.5", "-iters", "300", "-tol", "-1", "-out", model}, dataArgs(data)...)
	require.NoError(t, run(args, &out, logger))

	assert.Contains(t, out.String(), "loss:        ce")
	assert.Contains(t, out.String(), "status:      max iterations reached")
	assert.Contains(t, out.String(), "iterations:  300 (300 steps)")
	assert.Contains(t, out.String(), "test:        loss=")
	assert.Contains(t, logs.String(), "train=40 ")
	assert.Contains(t, logs.String(), "wrote "+model)
	assert.NotContains(t, logs.String(), "iteration=")

	art, err := serialization.Load(model)
	require.NoError(t, err)
	assert.Equal(t, loss.CrossEntropy, art.Loss)
	assert.Equal(t, 4, art.Model.Dim())
	require.NotNil(t, art.Record)
	assert.Equal(t, 300, art.Record.Len())

	out.Reset()
	require.NoError(t, run(append([]string{"eval", "-model", model}, dataArgs(data)...), &out, logger))
	assert.Contains(t, out.String(), "loss: ce")
	assert.Contains(t, out.String(), "train: loss=")
	assert.Contains(t, out.String(), "test:  loss=")
	assert.Contains(t, out.String(), "acc=1.0000 errors=0/10")
	assert.Contains(t, out.String(), "recorded: 300 iterations")
}

func TestRun_TrainVerbose(t *testing.T) {
	data := writeArchive(t, 90)

	var out bytes.Buffer
	logger, logs := newLogger()
	args := append([]string{"train", "-iters", "3", "-tol", "-1", "-v"}, dataArgs(data)...)
	require.NoError(t, run(args, &out, logger))

	assert.Contains(t, logs.String(), "iteration=0 ")
	assert.Contains(t, logs.String(), "iteration=2 ")
	assert.Contains(t, out.String(), "loss:        mse")
}

func TestRun_EvalDimensionMismatch(t *testing.T) {
	data := writeArchive(t, 90)
	model := filepath.Join(t.TempDir(), "model.npz")
	logger, _ := newLogger()

	var out bytes.Buffer
	require.NoError(t, run(append([]string{"train", "-iters", "1", "-out", model}, dataArgs(data)...), &out, logger))

	other := filepath.Join(t.TempDir(), "other.npz")
	f, err := os.Create(other)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, b := range map[string][]byte{
		"images": npy("<f8", "90, 3", make([]float64, 270)),
		"labels": npy("<i8", "90,", repeatLabels(90)),
	} {
		w, err := zw.Create(name + ".npy")
		require.NoError(t, err)
		_, err = w.Write(b)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	err = run(append([]string{"eval", "-model", model}, dataArgs(other)...), &out, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 4 features")
}

func TestRun_EvalUsesTrainingReg(t *testing.T) {
	data := writeArchive(t, 90)
	model := filepath.Join(t.TempDir(), "model.npz")
	logger, _ := newLogger()

	var out bytes.Buffer
	args := append([]string{"train", "-loss", "ce", "-reg", "0.5", "-iters", "5", "-out", model}, dataArgs(data)...)
	require.NoError(t, run(args, &out, logger))

	art, err := serialization.Load(model)
	require.NoError(t, err)
	assert.Equal(t, 0.5, art.Reg)

	cfg := dataset.DefaultConfig()
	cfg.TrainSize, cfg.ValidSize = 40, 10
	splits, err := dataset.Load(data, cfg)
	require.NoError(t, err)
	s, err := loss.New(art.Loss)
	require.NoError(t, err)
	valid := func(reg float64) string {
		return fmt.Sprintf("valid: loss=%.6f ", s.Loss(art.Model.W, art.Model.B, splits.Valid.X, splits.Valid.Y, reg))
	}

	out.Reset()
	require.NoError(t, run(append([]string{"eval", "-model", model}, dataArgs(data)...), &out, logger))
	assert.Contains(t, out.String(), "loss: ce (reg 0.5)")
	assert.Contains(t, out.String(), valid(0.5))

	out.Reset()
	require.NoError(t, run(append([]string{"eval", "-model", model, "-reg", "0"}, dataArgs(data)...), &out, logger))
	assert.Contains(t, out.String(), "loss: ce (reg 0)")
	assert.Contains(t, out.String(), valid(0))
}

func TestRun_EmptyTestSplit(t *testing.T) {
	// 75 rows leave 25 of each kept label: exactly train-size + valid-size.
	data := writeArchive(t, 75)
	model := filepath.Join(t.TempDir(), "model.npz")
	logger, logs := newLogger()

	var out bytes.Buffer
	require.NoError(t, run(append([]string{"train", "-iters", "3", "-out", model}, dataArgs(data)...), &out, logger))
	assert.Contains(t, logs.String(), "test=0 ")
	assert.Contains(t, out.String(), "test:        empty")
	assert.NotContains(t, out.String(), "NaN")

	out.Reset()
	require.NoError(t, run(append([]string{"eval", "-model", model}, dataArgs(data)...), &out, logger))
	assert.Contains(t, out.String(), "test:  empty")
	assert.Contains(t, out.String(), "recorded: 3 iterations\n")
	assert.NotContains(t, out.String(), "NaN")

	err := run(append([]string{"train", "-iters", "3"}, dataArgs(writeArchive(t, 72))...), &out, logger)
	assert.Error(t, err)
}

func repeatLabels(n int) []int64 {
	labels := make([]int64, n)
	for i := range labels {
		labels[i] = []int64{2, 9, 5}[i%3]
	}
	return labels
}

func TestRun_Errors(t *testing.T) {
	data := writeArchive(t, 90)
	logger, _ := newLogger()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no command", nil, errUsage},
		{"unknown command", []string{"predict"}, errUsage},
		{"bad flag", []string{"train", "-nope"}, errUsage},
		{"extra argument", []string{"train", "extra"}, errUsage},
		{"unknown format", append([]string{"train", "-format", "xml"}, dataArgs(data)...), errUsage},
		{"idx without labels", append([]string{"train", "-format", "idx"}, dataArgs(data)...), errUsage},
		{"unrecognised extension", []string{"train", "-data", "images.bin"}, errUsage},
		{"unknown loss", append([]string{"train", "-loss", "hinge"}, dataArgs(data)...), loss.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out, logger)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var out bytes.Buffer
	err := run(append([]string{"train", "-lr", "0"}, dataArgs(data)...), &out, logger)
	assert.Error(t, err)

	err = run([]string{"train", "-data", filepath.Join(t.TempDir(), "missing.npz")}, &out, logger)
	assert.Error(t, err)

	err = run(append([]string{"eval", "-model", filepath.Join(t.TempDir(), "missing.npz")}, dataArgs(data)...), &out, logger)
	assert.Error(t, err)
}

func TestRun_TrainCSV(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("label,p0,p1\n")
	for i := 0; i < 90; i++ {
		switch i % 3 {
		case 0:
			sb.WriteString("2,255,0\n")
		case 1:
			sb.WriteString("9,0,255\n")
		default:
			sb.WriteString("5,128,128\n")
		}
	}
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))

	var out bytes.Buffer
	logger, logs := newLogger()
	require.NoError(t, run(append([]string{"train", "-iters", "5"}, dataArgs(path)...), &out, logger))
	assert.Contains(t, logs.String(), "dim=2")
	assert.Contains(t, out.String(), "status:")
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	logger, _ := newLogger()
	require.NoError(t, run([]string{"version"}, &out, logger))
	assert.True(t, strings.HasPrefix(out.String(), "linclass "+version+"\n"), out.String())
	assert.Contains(t, out.String(), "workers)")

	out.Reset()
	require.NoError(t, run([]string{"help"}, &out, logger))
	assert.Contains(t, out.String(), "Commands:")
}
