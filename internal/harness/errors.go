// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

// ValidationError is returned if a [Spec] is invalid.
type ValidationError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ValidationError) Error() string {
	return "invalid spec: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ValidationError) Is(other error) bool {
	_, ok := other.(*ValidationError)
	return ok
}
