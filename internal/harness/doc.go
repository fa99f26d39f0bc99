// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package harness runs the stages of a vgadash test run in order: resolve the
// kernel version, locate the kernel artifacts, build the module, assemble the
// initramfs, boot the guest and verify its transcript.
//
// Each stage must succeed before the next one starts. There are no retries.
package harness
