// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"errors"
	"strings"
)

var (
	// ErrToolMissing is returned if a required host tool can not be found.
	ErrToolMissing = errors.New("tool missing")

	// ErrInvalidMarker is returned if the marker can not be embedded into the
	// init script as is.
	ErrInvalidMarker = errors.New("invalid marker")

	// ErrPipelineStageFailed is returned if a stage of the archive pipeline
	// failed.
	ErrPipelineStageFailed = errors.New("pipeline stage failed")

	// ErrUnsupportedFileType is returned if the tree contains a file that can
	// not be archived, like a socket or device node.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// errStageAborted is the error a stage sees on its pipe ends if the
	// adjacent stage terminated.
	errStageAborted = errors.New("adjacent stage terminated")
)

// PipelineStageError wraps the error of the failed pipeline stage. It carries
// the diagnostic output the stage produced before it failed.
type PipelineStageError struct {
	Stage      string
	Err        error
	Diagnostic string
}

// Error implements the [error] interface.
func (e *PipelineStageError) Error() string {
	msg := "stage " + e.Stage + ": " + e.Err.Error()

	diag := strings.TrimSpace(e.Diagnostic)
	if diag != "" {
		msg += "\n" + diag
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*PipelineStageError) Is(other error) bool {
	_, ok := other.(*PipelineStageError)
	return ok || other == ErrPipelineStageFailed //nolint:errorlint,err113
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *PipelineStageError) Unwrap() error {
	return e.Err
}
