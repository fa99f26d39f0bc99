// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"time"
)

var (
	// ErrArgumentCollision is returned if two [Argument]s are considered equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrTimeout is returned if the guest did not terminate within the
	// configured time budget.
	ErrTimeout = errors.New("timeout")
)

// ArgumentError indicates an issue with an input argument.
type ArgumentError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	return "argument error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// TimeoutError is returned if the guest was killed because it exceeded the
// time budget. It carries everything the guest printed until then.
type TimeoutError struct {
	Timeout    time.Duration
	Transcript string
}

// Error implements the [error] interface.
func (e *TimeoutError) Error() string {
	return "guest did not terminate within " + e.Timeout.String()
}

// Is implements the [errors.Is] interface.
func (*TimeoutError) Is(other error) bool {
	_, ok := other.(*TimeoutError)
	return ok || other == ErrTimeout //nolint:errorlint,err113
}
