// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package publish

import "errors"

// ErrPublishFailed is returned if a record could not be delivered.
var ErrPublishFailed = errors.New("publish failed")

// PublishError wraps the error of the failed publishing step.
type PublishError struct {
	Step string
	Err  error
}

// Error implements the [error] interface.
func (e *PublishError) Error() string {
	return "publish: " + e.Step + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*PublishError) Is(other error) bool {
	_, ok := other.(*PublishError)
	return ok || other == ErrPublishFailed //nolint:errorlint,err113
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *PublishError) Unwrap() error {
	return e.Err
}
