// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package snapshot verifies the serial console transcript of a test guest.
//
// The guest prints the dashboard snapshot between the [BeginSentinel] and
// [EndSentinel] lines. A run passes if both sentinels and the marker injected
// into the kernel log are present in the transcript.
package snapshot
