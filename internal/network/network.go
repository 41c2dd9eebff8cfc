// Package network hands a prepared batch to the trained recombination network.
package network

import (
	"context"
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// Predictor runs the trained network over the batch described by manifest
// and writes one line per window to resultsFile.
type Predictor interface {
	Predict(ctx context.Context, manifest string, resultsFile string) error
}

// Exec runs an external inference program.
//
//	<Command> --model <Model> --weights <Weights> --batch <manifest> --results <file> --gpuID <GPU>
type Exec struct {
	Command string
	Model   string
	Weights string
	GPU     int
}

func (e *Exec) Args(manifest, resultsFile string) []string {
	return []string{
		"--model", e.Model,
		"--weights", e.Weights,
		"--batch", manifest,
		"--results", resultsFile,
		"--gpuID", strconv.Itoa(e.GPU),
	}
}

func (e *Exec) Predict(ctx context.Context, manifest string, resultsFile string) error {
	cmd := exec.CommandContext(ctx, e.Command, e.Args(manifest, resultsFile)...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed on %s", e.Command, manifest)
	}
	if _, err := os.Stat(resultsFile); err != nil {
		return errors.Wrapf(err, "%s did not write %s", e.Command, resultsFile)
	}
	return nil
}

// CheckArtifacts fails if the model definition or the weights are missing.
func (e *Exec) CheckArtifacts() error {
	for _, f := range []string{e.Model, e.Weights} {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrap(err, "missing network artifact")
		}
	}
	return nil
}
