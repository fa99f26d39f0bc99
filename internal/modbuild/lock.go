// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package modbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// LockFileName is the name of the lock file in the build directory.
const LockFileName = ".vgadash-build.lock"

const lockPollInterval = 100 * time.Millisecond

// lockDir acquires an exclusive advisory lock for the given directory.
//
// It polls until the lock is acquired or the context is done. The returned
// function releases the lock.
func lockDir(ctx context.Context, dir string) (func(), error) {
	path := filepath.Join(dir, LockFileName)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			break
		}

		if !errors.Is(err, unix.EWOULDBLOCK) {
			_ = file.Close()
			return nil, fmt.Errorf("lock %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			_ = file.Close()
			return nil, fmt.Errorf("wait for lock %s: %w", path, ctx.Err())
		case <-ticker.C:
		}
	}

	unlock := func() {
		_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
		_ = file.Close()
	}

	return unlock, nil
}
