// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for vgadash-ci. It handles
// flag parsing, logging setup, error handling and exit codes.
package cmd
