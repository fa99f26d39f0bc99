// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// StageFunc processes the data read from src and writes the result into dst.
// Human readable progress or error information may be written into diag.
type StageFunc func(ctx context.Context, dst io.Writer, src io.Reader, diag io.Writer) error

// Stage is a named step of a [Pipeline].
type Stage struct {
	Name string
	Run  StageFunc
}

// Pipeline runs the given stages concurrently. Each stage's output is
// connected to the input of the next one by an [io.Pipe]. The first stage
// reads no input, the last one writes into dst.
//
// It waits for all stages to terminate and checks the result of each of them.
// If any failed, a [PipelineStageError] is returned for the stage that caused
// the failure. Stages that only failed because an adjacent stage terminated
// early are not reported if there is a cause further up or down the chain.
func Pipeline(ctx context.Context, dst io.Writer, stages ...Stage) error {
	if len(stages) == 0 {
		return nil
	}

	var (
		group   errgroup.Group
		results = make([]error, len(stages))
		diags   = make([]bytes.Buffer, len(stages))
		input   *io.PipeReader
	)

	for idx, stage := range stages {
		var (
			src    io.Reader = strings.NewReader("")
			out              = dst
			output *io.PipeWriter
		)

		if input != nil {
			src = input
		}

		if idx < len(stages)-1 {
			var next *io.PipeReader

			next, output = io.Pipe()
			out = output
			input = next
		}

		group.Go(func() error {
			err := stage.Run(ctx, out, src, &diags[idx])

			// Signal EOF on success downstream. On failure the next stage
			// sees errStageAborted instead of a regular EOF and can not
			// mistake a truncated stream for a complete one.
			if output != nil {
				_ = output.CloseWithError(abortedIf(err))
			}

			// Unblock the upstream stage if it still writes.
			if pipeReader, ok := src.(*io.PipeReader); ok {
				_ = pipeReader.CloseWithError(errStageAborted)
			}

			results[idx] = err

			return nil
		})
	}

	_ = group.Wait()

	failed := failedStage(results)
	if failed < 0 {
		return nil
	}

	return &PipelineStageError{
		Stage:      stages[failed].Name,
		Err:        results[failed],
		Diagnostic: diags[failed].String(),
	}
}

func abortedIf(err error) error {
	if err != nil {
		return errStageAborted
	}

	return nil
}

// failedStage returns the index of the stage to report. That is the first
// stage that failed on its own. If all failed stages only saw an adjacent
// stage terminate, the first of them is returned. It returns -1 if no stage
// failed.
func failedStage(results []error) int {
	first := -1

	for idx, err := range results {
		if err == nil {
			continue
		}

		if !errors.Is(err, errStageAborted) {
			return idx
		}

		if first < 0 {
			first = idx
		}
	}

	return first
}
