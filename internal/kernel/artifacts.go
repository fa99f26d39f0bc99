// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package kernel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultBootDir is where distributions install kernel images.
	DefaultBootDir = "/boot"

	// DefaultHeadersDir is where distributions install kernel header trees.
	DefaultHeadersDir = "/usr/src"
)

// Layout describes where kernel images and header trees are installed.
type Layout struct {
	BootDir    string
	HeadersDir string
}

// DefaultLayout is the usual Debian/Ubuntu layout.
var DefaultLayout = Layout{
	BootDir:    DefaultBootDir,
	HeadersDir: DefaultHeadersDir,
}

// Artifacts are the host files of a kernel version.
type Artifacts struct {
	Version string
	Image   string
	Headers string
}

// ImagePath returns the path of the kernel image for the given version.
func (l Layout) ImagePath(version string) string {
	return filepath.Join(l.BootDir, imagePrefix+version)
}

// HeadersPath returns the path of the header tree for the given version.
func (l Layout) HeadersPath(version string) string {
	return filepath.Join(l.HeadersDir, "linux-headers-"+version)
}

// Locate returns the [Artifacts] for the given version.
//
// Both the kernel image and the header tree must exist. Otherwise a
// [MissingArtifactError] is returned naming the first missing one.
func Locate(version string, layout Layout) (Artifacts, error) {
	artifacts := Artifacts{
		Version: version,
		Image:   layout.ImagePath(version),
		Headers: layout.HeadersPath(version),
	}

	checks := []struct {
		kind string
		path string
	}{
		{"image", artifacts.Image},
		{"headers", artifacts.Headers},
	}

	for _, check := range checks {
		_, err := os.Stat(check.path)
		if err == nil {
			continue
		}

		if errors.Is(err, fs.ErrNotExist) {
			return Artifacts{}, &MissingArtifactError{
				Kind: check.kind,
				Path: check.path,
			}
		}

		return Artifacts{}, fmt.Errorf("stat %s: %w", check.kind, err)
	}

	return artifacts, nil
}
