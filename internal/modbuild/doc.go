// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package modbuild invokes the external kernel module build for a kernel
// version and checks that it produced the module file.
//
// The build mutates its source directory, so builds for the same directory
// are serialized with an advisory file lock.
package modbuild
