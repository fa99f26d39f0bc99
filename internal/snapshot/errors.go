// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package snapshot

import (
	"errors"
)

// ErrAssertionFailed is returned if a required element is not found in the
// transcript.
var ErrAssertionFailed = errors.New("assertion failed")

// AssertionError names the first required element missing in the transcript.
type AssertionError struct {
	Missing string
}

// Error implements the [error] interface.
func (e *AssertionError) Error() string {
	return "did not find " + e.Missing + " in serial output"
}

// Is implements the [errors.Is] interface.
func (*AssertionError) Is(other error) bool {
	_, ok := other.(*AssertionError)
	return ok || other == ErrAssertionFailed //nolint:errorlint,err113
}
