package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/born-ml/linclass/internal/dataset"
	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/nn"
	"github.com/born-ml/linclass/internal/serialization"
	"github.com/born-ml/linclass/internal/train"
)

// dataFlags are the dataset options shared by train and eval.
type dataFlags struct {
	path      *string
	labels    *string
	format    *string
	pos, neg  *int
	seed      *uint64
	trainSize *int
	validSize *int
}

func addDataFlags(fs *flag.FlagSet) dataFlags {
	def := dataset.DefaultConfig()
	return dataFlags{
		path:      fs.String("data", "notMNIST.npz", "Dataset file: .npz archive, CSV file or IDX image file"),
		labels:    fs.String("labels", "", "IDX label file to pair with an IDX -data file"),
		format:    fs.String("format", "auto", "Dataset format: auto, npz, csv or idx"),
		pos:       fs.Int("pos", def.Positive, "Label mapped to class 1"),
		neg:       fs.Int("neg", def.Negative, "Label mapped to class 0"),
		seed:      fs.Uint64("seed", def.Seed, "Shuffle and initialization seed"),
		trainSize: fs.Int("train-size", def.TrainSize, "Number of training examples"),
		validSize: fs.Int("valid-size", def.ValidSize, "Number of validation examples"),
	}
}

func (d dataFlags) load() (*dataset.Splits, error) {
	cfg := dataset.DefaultConfig()
	cfg.Positive = *d.pos
	cfg.Negative = *d.neg
	cfg.Seed = *d.seed
	cfg.TrainSize = *d.trainSize
	cfg.ValidSize = *d.validSize

	format := *d.format
	if format == "auto" {
		switch {
		case strings.EqualFold(filepath.Ext(*d.path), ".npz"):
			format = "npz"
		case strings.EqualFold(filepath.Ext(*d.path), ".csv"):
			format = "csv"
		case *d.labels != "":
			format = "idx"
		default:
			return nil, fmt.Errorf("%w: cannot infer format of %s, set -format", errUsage, *d.path)
		}
	}

	switch format {
	case "npz":
		return dataset.Load(*d.path, cfg)
	case "csv":
		return dataset.LoadCSV(*d.path, cfg)
	case "idx":
		if *d.labels == "" {
			return nil, fmt.Errorf("%w: -format idx needs -labels", errUsage)
		}
		return dataset.LoadIDX(*d.path, *d.labels, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", errUsage, format)
	}
}

// parse runs fs.Parse and maps flag errors onto errUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return nil
}

func runTrain(args []string, stdout io.Writer, logger *log.Logger) error {
	def := train.DefaultConfig()

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	data := addDataFlags(fs)
	lossName := fs.String("loss", def.Loss.String(), "Loss function: mse or ce")
	lr := fs.Float64("lr", def.LearningRate, "Learning rate")
	iters := fs.Int("iters", def.MaxIterations, "Maximum number of iterations")
	reg := fs.Float64("reg", def.Reg, "L2 regularization strength")
	tol := fs.Float64("tol", def.Tolerance, "Stop when the train loss improves by less than this")
	initStd := fs.Float64("init-std", 0.1, "Standard deviation of the initial weights")
	out := fs.String("out", "", "Write the trained model to this .npz file")
	verbose := fs.Bool("v", false, "Log every iteration")
	if err := parse(fs, args); err != nil {
		return err
	}

	kind, err := loss.ParseKind(*lossName)
	if err != nil {
		return err
	}

	splits, err := data.load()
	if err != nil {
		return fmt.Errorf("load %s: %w", *data.path, err)
	}
	logger.Printf("loaded %s: %s", *data.path, splits.Summary())

	cfg := train.Config{
		LearningRate:  *lr,
		MaxIterations: *iters,
		Reg:           *reg,
		Tolerance:     *tol,
		Loss:          kind,
	}
	if *verbose {
		cfg.Logger = logger
	}

	init := nn.Normal(splits.Dim(), *initStd, *data.seed)
	res, err := train.Run(init, splits, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "loss:        %s\n", kind)
	fmt.Fprintf(stdout, "status:      %s\n", res.Status)
	fmt.Fprintf(stdout, "iterations:  %d (%d steps)\n", res.Iterations, res.Steps)
	if last, ok := res.Record.Last(); ok {
		fmt.Fprintf(stdout, "train:       loss=%.6f acc=%.4f\n", last.TrainLoss, last.TrainAccuracy)
		fmt.Fprintf(stdout, "valid:       loss=%.6f acc=%.4f\n", last.ValidLoss, last.ValidAccuracy)
		if splits.Test.Len() == 0 {
			fmt.Fprintln(stdout, "test:        empty")
		} else {
			fmt.Fprintf(stdout, "test:        loss=%.6f acc=%.4f\n", last.TestLoss, last.TestAccuracy)
		}
	}
	if best, ok := res.Record.BestValid(); ok {
		fmt.Fprintf(stdout, "best valid:  iteration %d acc=%.4f\n", best, res.Record.At(best).ValidAccuracy)
	}

	if *out == "" {
		return nil
	}
	art := serialization.Artifact{Model: res.Model, Loss: kind, Reg: *reg, Record: res.Record}
	if err := serialization.Save(*out, art); err != nil {
		return err
	}
	logger.Printf("wrote %s", *out)
	return nil
}
