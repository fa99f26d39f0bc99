// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package kernel

import (
	"errors"
)

var (
	// ErrVersionNotFound is returned if no kernel version is given and none
	// could be detected.
	ErrVersionNotFound = errors.New("kernel version not found")

	// ErrMissingArtifact is returned if a kernel file required for building
	// or booting does not exist.
	ErrMissingArtifact = errors.New("missing kernel artifact")
)

// MissingArtifactError names the kernel file that is missing.
type MissingArtifactError struct {
	Kind string
	Path string
}

// Error implements the [error] interface.
func (e *MissingArtifactError) Error() string {
	return "missing kernel " + e.Kind + ": " + e.Path
}

// Is implements the [errors.Is] interface.
func (*MissingArtifactError) Is(other error) bool {
	_, ok := other.(*MissingArtifactError)
	return ok || other == ErrMissingArtifact //nolint:errorlint,err113
}
