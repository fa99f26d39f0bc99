// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu composes and supervises the QEMU command that boots the test
// guest. It expects the QEMU binary to be present on the system.
//
// The guest's serial console is connected to the command's stdio. Everything
// the emulator prints is collected into a single transcript that is returned
// even if the guest has to be killed because it did not terminate in time.
package qemu
