// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package modbuild

import (
	"errors"
	"fmt"
)

// ErrBuildArtifactMissing is returned if the build finished but the module
// file does not exist.
var ErrBuildArtifactMissing = errors.New("build artifact missing")

// BuildArtifactMissingError names the module file the build should have
// produced.
type BuildArtifactMissingError struct {
	Path string
}

// Error implements the [error] interface.
func (e *BuildArtifactMissingError) Error() string {
	return fmt.Sprintf("%v: %s", ErrBuildArtifactMissing, e.Path)
}

// Is implements the [errors.Is] interface.
func (*BuildArtifactMissingError) Is(other error) bool {
	_, ok := other.(*BuildArtifactMissingError)
	return ok || other == ErrBuildArtifactMissing //nolint:errorlint,err113
}

// StepError wraps the failure of a single build step.
type StepError struct {
	Step string
	Err  error
}

// Error implements the [error] interface.
func (e *StepError) Error() string {
	return "make " + e.Step + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*StepError) Is(other error) bool {
	_, ok := other.(*StepError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StepError) Unwrap() error {
	return e.Err
}
