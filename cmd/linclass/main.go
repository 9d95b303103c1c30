// Package main provides the linclass CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/klauspost/cpuid/v2"

	"github.com/born-ml/linclass/internal/parallel"
)

const version = "v0.1.0-dev"

// errUsage marks a bad command line. The usage text has already been printed.
var errUsage = errors.New("usage")

func main() {
	logger := log.New(os.Stderr, "linclass: ", log.LstdFlags)

	err := run(os.Args[1:], os.Stdout, logger)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return
	case errors.Is(err, errUsage):
		if err != errUsage {
			logger.Print(err)
		}
		os.Exit(2)
	default:
		logger.Fatal(err)
	}
}

// run dispatches args to a subcommand. Results go to stdout and
// diagnostics to logger.
func run(args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) == 0 {
		usage(logger.Writer())
		return errUsage
	}

	switch args[0] {
	case "train":
		return runTrain(args[1:], stdout, logger)
	case "eval":
		return runEval(args[1:], stdout, logger)
	case "version":
		fmt.Fprintf(stdout, "linclass %s\n", version)
		fmt.Fprintf(stdout, "cpu: %s (%d workers)\n", cpuid.CPU.BrandName, parallel.Workers())
		return nil
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(logger.Writer())
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "linclass - binary linear classifier trained by gradient descent")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train a model on a .npz image archive")
	fmt.Fprintln(w, "  eval       Score a saved model on every split")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'linclass <command> -h' for command flags.")
}
