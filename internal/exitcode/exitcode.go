// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package exitcode defines the exit codes of the command.
package exitcode

import (
	"errors"
	"fmt"
)

const (
	// OK is returned on success and if help was requested.
	OK = 0

	// Failure is returned on any failure without a more specific code,
	// including failed verification.
	Failure = 1

	// Usage is returned on invalid command line arguments.
	Usage = 2

	// Timeout is returned if the guest did not terminate in time. It
	// matches the exit code of timeout(1).
	Timeout = 124
)

// Error is an exit code that is considered an error.
type Error int

func (e Error) Error() string {
	return fmt.Sprintf("exit code %d", int(e))
}

// Is implements the [errors.Is] interface.
func (Error) Is(other error) bool {
	_, ok := other.(Error)
	return ok
}

// Code returns the exit code as basic int type.
func (e Error) Code() int {
	return int(e)
}

// From returns the exit code for the given error.
//
// If the error is nil, the exit code is [OK]. If the error is an [Error] the
// exit code is the return value of [Error.Code]. Otherwise it is [Failure].
func From(err error) int {
	if err == nil {
		return OK
	}

	var exitErr Error
	if errors.As(err, &exitErr) {
		return exitErr.Code()
	}

	return Failure
}
