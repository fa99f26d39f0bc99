// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"

	"github.com/vgadash/vgadash-ci/internal/exitcode"
)

// ErrNoCommand is returned if no subcommand is given.
var ErrNoCommand = errors.New("no command given")

// UsageError wraps errors caused by invalid command line arguments.
type UsageError struct {
	Err error
}

// Error implements the [error] interface.
func (e *UsageError) Error() string {
	return e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*UsageError) Is(other error) bool {
	_, ok := other.(*UsageError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface. The [exitcode.Error] is
// included, so the exit code can be derived from it.
func (e *UsageError) Unwrap() []error {
	return []error{exitcode.Error(exitcode.Usage), e.Err}
}
