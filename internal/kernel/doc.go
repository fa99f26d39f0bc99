// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kernel selects the kernel version to test against and locates the
// host files belonging to it: the bootable kernel image and the header tree
// the module is built with.
package kernel
