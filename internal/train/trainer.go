// Package train runs full-batch gradient descent on a linear classifier and
// records its loss and accuracy on every split after each step.
//
// Example:
//
//	cfg := train.DefaultConfig()
//	cfg.Loss = loss.CrossEntropy
//	res, err := train.Run(nn.Normal(data.Dim(), 0.1, 421), data, cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Status, res.Record.Len())
package train

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/linclass/internal/classify"
	"github.com/born-ml/linclass/internal/dataset"
	"github.com/born-ml/linclass/internal/loss"
	"github.com/born-ml/linclass/internal/nn"
	"github.com/born-ml/linclass/internal/optim"
	"github.com/born-ml/linclass/internal/perf"
)

// Status is the terminal state of a run.
type Status int

// Terminal states. Both return a model and a record.
const (
	MaxIterationsReached Status = iota
	EarlyStopped
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case MaxIterationsReached:
		return "max iterations reached"
	case EarlyStopped:
		return "early stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of a run.
type Result struct {
	Model      nn.Linear    // Parameters after the last update
	Record     *perf.Record // One entry per completed iteration
	Status     Status
	Iterations int // Completed iterations, equal to Record.Len()
	Steps      int // Updates applied to the model
}

// Trainer holds the strategy and update rule chosen for a run.
type Trainer struct {
	cfg      Config
	strategy loss.Strategy
	opt      optim.Optimizer
}

// New validates cfg and resolves its loss strategy and optimizer.
func New(cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := loss.New(cfg.Loss)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "%v", err)
	}
	opt, err := optim.NewGradientDescent(optim.Config{LR: cfg.LearningRate})
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "%v", err)
	}
	return &Trainer{cfg: cfg, strategy: strategy, opt: opt}, nil
}

// Run is shorthand for New(cfg) followed by Trainer.Run.
func Run(init nn.Linear, data *dataset.Splits, cfg Config) (*Result, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return t.Run(init, data)
}

// Strategy returns the loss strategy used by the trainer.
func (t *Trainer) Strategy() loss.Strategy {
	return t.strategy
}

// Run trains from init until MaxIterations steps have been taken or the
// training loss improves by less than Tolerance.
//
// Iteration i computes the training loss and gradient at the current
// parameters, takes one step, then evaluates the new parameters on the
// validation and test splits and the accuracy on all three. The entry is
// stored at index i. improvement is the previous iteration's training loss
// minus this one, with +Inf before the first iteration. When improvement
// falls below Tolerance, the record is truncated to the i iterations that
// preceded the stopping one and the run ends with EarlyStopped.
//
// An empty test split is allowed and records NaN test loss and accuracy.
// init is never modified.
func (t *Trainer) Run(init nn.Linear, data *dataset.Splits) (*Result, error) {
	if err := checkData(init, data); err != nil {
		return nil, err
	}

	var (
		s      = t.strategy
		reg    = t.cfg.Reg
		rec    = perf.New(t.cfg.MaxIterations)
		m      = init
		prev   = math.Inf(1)
		status = MaxIterationsReached
		steps  int
	)

	for i := 0; i < t.cfg.MaxIterations; i++ {
		trainLoss := s.Loss(m.W, m.B, data.Train.X, data.Train.Y, reg)
		if !finite(trainLoss) {
			return nil, errors.WithStack(&InstabilityError{Iteration: i, Split: "train", Loss: trainLoss})
		}

		gradW, gradB := s.Gradient(m.W, m.B, data.Train.X, data.Train.Y, reg)
		m = t.opt.Step(m, gradW, gradB)
		steps++

		validLoss := s.Loss(m.W, m.B, data.Valid.X, data.Valid.Y, reg)
		if !finite(validLoss) {
			return nil, errors.WithStack(&InstabilityError{Iteration: i, Split: "valid", Loss: validLoss})
		}
		testLoss, testAcc := math.NaN(), math.NaN()
		if data.Test.Len() > 0 {
			testLoss = s.Loss(m.W, m.B, data.Test.X, data.Test.Y, reg)
			if !finite(testLoss) {
				return nil, errors.WithStack(&InstabilityError{Iteration: i, Split: "test", Loss: testLoss})
			}
			testAcc = classify.Evaluate(m, data.Test.X, data.Test.Y, s).Accuracy
		}

		rec.Set(i, perf.Entry{
			TrainLoss:     trainLoss,
			ValidLoss:     validLoss,
			TestLoss:      testLoss,
			TrainAccuracy: classify.Evaluate(m, data.Train.X, data.Train.Y, s).Accuracy,
			ValidAccuracy: classify.Evaluate(m, data.Valid.X, data.Valid.Y, s).Accuracy,
			TestAccuracy:  testAcc,
		})

		improvement := prev - trainLoss
		prev = trainLoss
		t.logf("iteration=%d loss=%.6f improvement=%.6g", i, trainLoss, improvement)

		if improvement < t.cfg.Tolerance {
			rec.Truncate(i)
			status = EarlyStopped
			t.logf("improvement %.6g below tolerance %.6g, stopping after %d iterations", improvement, t.cfg.Tolerance, i)
			break
		}
	}

	return &Result{
		Model:      m,
		Record:     rec,
		Status:     status,
		Iterations: rec.Len(),
		Steps:      steps,
	}, nil
}

func (t *Trainer) logf(format string, v ...any) {
	if t.cfg.Logger != nil {
		t.cfg.Logger.Printf(format, v...)
	}
}

// checkData rejects missing data, empty train or validation splits and
// dimension mismatches before any iteration runs. The test split may be
// empty.
func checkData(init nn.Linear, data *dataset.Splits) error {
	if data == nil {
		return errors.Wrap(ErrInvalidConfiguration, "no dataset")
	}
	if init.W == nil {
		return errors.Wrap(ErrInvalidConfiguration, "no initial weights")
	}
	for _, sp := range []struct {
		name  string
		split dataset.Split
	}{
		{"train", data.Train},
		{"valid", data.Valid},
		{"test", data.Test},
	} {
		if sp.name == "test" && sp.split.Len() == 0 && sp.split.X == nil {
			continue
		}
		if sp.split.Len() == 0 || sp.split.X == nil {
			return errors.Wrapf(ErrInvalidConfiguration, "%s split is empty", sp.name)
		}
		rows, cols := sp.split.X.Dims()
		if rows != sp.split.Len() {
			return errors.Wrapf(ErrInvalidConfiguration, "%s split has %d feature rows and %d labels", sp.name, rows, sp.split.Len())
		}
		if cols != init.Dim() {
			return errors.Wrapf(ErrInvalidConfiguration, "%s split has dimension %d, model has %d", sp.name, cols, init.Dim())
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
