// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultBusybox is where busybox-static installs the executable.
const DefaultBusybox = "/bin/busybox"

const (
	dirMode  = 0o755
	execMode = 0o755
	fileMode = 0o644
)

// Directories created in the guest tree.
var treeDirs = []string{
	"bin",
	"sbin",
	"etc",
	"proc",
	"sys",
	"dev",
	"tmp",
	"sys/kernel/debug",
}

// Applets are the busybox commands linked in /bin. The init script uses
// nothing else, including the failure path.
var Applets = []string{
	"sh",
	"mount",
	"mkdir",
	"insmod",
	"dmesg",
	"cat",
	"echo",
	"sleep",
	"poweroff",
	"reboot",
	"tee",
	"tail",
	"cttyhack",
}

// FindBusybox returns the path of the busybox executable.
//
// If path is not empty, it must exist. Otherwise [DefaultBusybox] is tried
// first and then the PATH is searched. It returns an error wrapping
// [ErrToolMissing] if none is found.
func FindBusybox(path string) (string, error) {
	if path != "" {
		_, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%w: busybox: %w", ErrToolMissing, err)
		}

		return path, nil
	}

	_, err := os.Stat(DefaultBusybox)
	if err == nil {
		return DefaultBusybox, nil
	}

	path, err = exec.LookPath("busybox")
	if err != nil {
		return "", fmt.Errorf("%w: busybox not found (install busybox-static)", ErrToolMissing)
	}

	return path, nil
}

// populateTree creates the guest file tree in the empty directory root.
func populateTree(root, busybox, module string, init []byte) error {
	for _, dir := range treeDirs {
		err := os.MkdirAll(filepath.Join(root, dir), dirMode)
		if err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	err := copyFile(filepath.Join(root, "bin", "busybox"), busybox, execMode)
	if err != nil {
		return fmt.Errorf("copy busybox: %w", err)
	}

	for _, applet := range Applets {
		err := os.Symlink("busybox", filepath.Join(root, "bin", applet))
		if err != nil {
			return fmt.Errorf("link applet: %w", err)
		}
	}

	err = copyFile(filepath.Join(root, ModuleName), module, fileMode)
	if err != nil {
		return fmt.Errorf("copy module: %w", err)
	}

	err = os.WriteFile(filepath.Join(root, "init"), init, execMode)
	if err != nil {
		return fmt.Errorf("write init: %w", err)
	}

	// WriteFile applies the umask, but init must be executable.
	err = os.Chmod(filepath.Join(root, "init"), execMode)
	if err != nil {
		return fmt.Errorf("chmod init: %w", err)
	}

	return nil
}

func copyFile(dst, src string, mode os.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer source.Close()

	target, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = io.Copy(target, source)
	if err != nil {
		_ = target.Close()
		return fmt.Errorf("copy: %w", err)
	}

	err = target.Close()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return os.Chmod(dst, mode) //nolint:wrapcheck
}

func warnIfDynamic(busybox string) {
	interpreter, err := readInterpreter(busybox)
	if err != nil {
		slog.Debug("Could not inspect busybox",
			slog.String("path", busybox),
			slog.Any("error", err))

		return
	}

	if interpreter != "" {
		slog.Warn("Busybox is dynamically linked, guest has no libraries",
			slog.String("path", busybox),
			slog.String("interpreter", interpreter))
	}
}
