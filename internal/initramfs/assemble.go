// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	tempDirPattern = "vgadash_initramfs_"
	imageMode      = 0o644
)

// Spec describes the initramfs image to assemble.
type Spec struct {
	// Output is the path of the image file to write.
	Output string

	// Module is the path of the kernel module to load in the guest.
	Module string

	// Marker is written into the guest's kernel log and expected in the
	// dashboard snapshot.
	Marker string

	// Interactive drops the guest into a shell instead of powering off.
	Interactive bool

	// Busybox overrides the busybox executable. See [FindBusybox].
	Busybox string
}

// ImagePath returns the image path for the given kernel version in dir.
func ImagePath(dir, version string) string {
	return filepath.Join(dir, "initramfs-"+version+".cpio.gz")
}

// Assemble builds the initramfs image as described by the given [Spec].
//
// The image file is only created if all stages succeed. On failure, no
// partially written file is left at [Spec.Output].
func Assemble(ctx context.Context, spec Spec) error {
	return assemble(ctx, spec, DefaultStages)
}

func assemble(
	ctx context.Context,
	spec Spec,
	stagesFor func(root string) []Stage,
) error {
	busybox, err := FindBusybox(spec.Busybox)
	if err != nil {
		return err
	}

	warnIfDynamic(busybox)

	init, err := InitScript(spec.Marker, spec.Interactive)
	if err != nil {
		return err
	}

	root, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return fmt.Errorf("create tree dir: %w", err)
	}
	defer removeTree(root)

	err = populateTree(root, busybox, spec.Module, init)
	if err != nil {
		return err
	}

	err = writeImage(ctx, spec.Output, stagesFor(root))
	if err != nil {
		return err
	}

	slog.Debug("Initramfs image written",
		slog.String("path", spec.Output),
		slog.String("busybox", busybox))

	return nil
}

// writeImage runs the pipeline into a temporary file next to path and renames
// it on success.
func writeImage(ctx context.Context, path string, stages []Stage) error {
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, dirMode)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	committed := false

	// Closing twice is harmless, the error is ignored anyway.
	defer func() {
		if !committed {
			_ = file.Close()
			_ = os.Remove(file.Name())
		}
	}()

	err = Pipeline(ctx, file, stages...)
	if err != nil {
		return err
	}

	err = file.Sync()
	if err != nil {
		return fmt.Errorf("sync image file: %w", err)
	}

	err = file.Chmod(imageMode)
	if err != nil {
		return fmt.Errorf("chmod image file: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close image file: %w", err)
	}

	err = os.Rename(file.Name(), path)
	if err != nil {
		return fmt.Errorf("rename image file: %w", err)
	}

	committed = true

	return nil
}

func removeTree(root string) {
	err := os.RemoveAll(root)
	if err != nil {
		slog.Error("Failed to remove initramfs tree",
			slog.String("path", root),
			slog.Any("error", err))
	}
}
