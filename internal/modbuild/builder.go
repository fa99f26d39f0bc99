// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package modbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	// DefaultMake is the build tool used if [Builder.Make] is empty.
	DefaultMake = "make"

	// ArtifactPath is the module file path relative to the build directory.
	ArtifactPath = "kernel/vgadash.ko"

	versionVar = "KVER"
)

// Builder builds the kernel module in a source directory.
type Builder struct {
	// Dir is the module source directory containing the Makefile.
	Dir string

	// Make is the build tool. Defaults to [DefaultMake].
	Make string

	// Stdout and Stderr receive the build tool output. Discarded if nil.
	Stdout io.Writer
	Stderr io.Writer
}

// ArtifactPath returns the absolute path of the module file the build is
// expected to produce.
func (b *Builder) ArtifactPath() (string, error) {
	dir, err := filepath.Abs(b.Dir)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return filepath.Join(dir, ArtifactPath), nil
}

// Build cleans and builds the module for the given kernel version and returns
// the path of the module file.
//
// The module file must exist after the build. Otherwise a
// [BuildArtifactMissingError] is returned, even if the build tool succeeded.
func (b *Builder) Build(ctx context.Context, version string) (string, error) {
	artifact, err := b.ArtifactPath()
	if err != nil {
		return "", err
	}

	unlock, err := lockDir(ctx, b.Dir)
	if err != nil {
		return "", err
	}
	defer unlock()

	// The version is passed both as make variable and in the environment, so
	// sub-makes see it as well.
	versionArg := versionVar + "=" + version

	err = b.run(ctx, "clean", versionArg, "clean", versionArg)
	if err != nil {
		return "", err
	}

	err = b.run(ctx, "build", versionArg, versionArg)
	if err != nil {
		return "", err
	}

	_, err = os.Stat(artifact)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &BuildArtifactMissingError{Path: artifact}
		}

		return "", fmt.Errorf("stat artifact: %w", err)
	}

	slog.Debug("Module built",
		slog.String("version", version),
		slog.String("path", artifact))

	return artifact, nil
}

func (b *Builder) run(
	ctx context.Context,
	step string,
	env string,
	args ...string,
) error {
	tool := b.Make
	if tool == "" {
		tool = DefaultMake
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = b.Dir
	cmd.Env = append(os.Environ(), env)
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr

	slog.Info("Run build step",
		slog.String("step", step),
		slog.String("command", cmd.String()))

	err := cmd.Run()
	if err != nil {
		return &StepError{Step: step, Err: err}
	}

	return nil
}
