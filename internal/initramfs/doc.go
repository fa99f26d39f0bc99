// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package initramfs assembles the initramfs the test guest boots from.
//
// The file tree is populated in a temporary directory: busybox with its
// applet links, the kernel module and a generated init script. The tree is
// then serialized by a streaming pipeline of three concurrent stages. The
// list stage emits NUL terminated file names, the archive stage writes a
// newc CPIO stream for them and the compress stage gzips it into the output
// file. The uncompressed archive is never materialized as a whole.
package initramfs
