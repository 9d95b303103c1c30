package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/born-ml/linclass/internal/classify"
	"github.com/born-ml/linclass/internal/dataset"
	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/serialization"
)

func runEval(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	data := addDataFlags(fs)
	modelPath := fs.String("model", "model.npz", "Model written by 'linclass train -out'")
	reg := fs.Float64("reg", 0, "L2 regularization strength included in the reported loss (default: the model's training value)")
	if err := parse(fs, args); err != nil {
		return err
	}
	regSet := false
	fs.Visit(func(f *flag.Flag) {
		regSet = regSet || f.Name == "reg"
	})

	art, err := serialization.Load(*modelPath)
	if err != nil {
		return err
	}
	s, err := loss.New(art.Loss)
	if err != nil {
		return fmt.Errorf("model %s: %w", *modelPath, err)
	}

	splits, err := data.load()
	if err != nil {
		return fmt.Errorf("load %s: %w", *data.path, err)
	}
	if splits.Dim() != art.Model.Dim() {
		return fmt.Errorf("model %s expects %d features, %s has %d", *modelPath, art.Model.Dim(), *data.path, splits.Dim())
	}
	logger.Printf("loaded %s (%s): %s", *modelPath, art.Model, splits.Summary())

	if !regSet {
		*reg = art.Reg
	}

	fmt.Fprintf(stdout, "loss: %s (reg %g)\n", art.Loss, *reg)
	for _, sp := range []struct {
		name string
		data dataset.Split
	}{
		{"train", splits.Train},
		{"valid", splits.Valid},
		{"test", splits.Test},
	} {
		if sp.data.Len() == 0 {
			fmt.Fprintf(stdout, "%-6s empty\n", sp.name+":")
			continue
		}
		l := s.Loss(art.Model.W, art.Model.B, sp.data.X, sp.data.Y, *reg)
		res := classify.Evaluate(art.Model, sp.data.X, sp.data.Y, s)
		fmt.Fprintf(stdout, "%-6s loss=%.6f acc=%.4f errors=%d/%d\n",
			sp.name+":", l, res.Accuracy, len(res.Errors()), sp.data.Len())
	}

	if art.Record != nil && art.Record.Written() > 0 {
		last, _ := art.Record.Last()
		if math.IsNaN(last.TestAccuracy) {
			fmt.Fprintf(stdout, "recorded: %d iterations\n", art.Record.Written())
		} else {
			fmt.Fprintf(stdout, "recorded: %d iterations, final test acc=%.4f\n", art.Record.Written(), last.TestAccuracy)
		}
	}
	return nil
}
