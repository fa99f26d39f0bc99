// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package snapshot

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	// BeginSentinel is printed by the guest before the snapshot.
	BeginSentinel = "===== VGADASH SNAPSHOT BEGIN ====="

	// EndSentinel is printed by the guest after the snapshot.
	EndSentinel = "===== VGADASH SNAPSHOT END ====="

	// LogsPageIndicator is present in a snapshot of the dashboard's logs
	// page.
	LogsPageIndicator = "page=logs"
)

// Metadata identifies the run a [Verdict] belongs to.
type Metadata struct {
	Version string `json:"version" yaml:"version"`
	Marker  string `json:"marker"  yaml:"marker"`
	Command string `json:"command" yaml:"command"`
}

// Verdict is the result of a transcript verification.
type Verdict struct {
	OK         bool
	Diagnostic string
	Warnings   []string
	Metadata   Metadata
}

type check struct {
	name   string
	needle string
}

// Verify checks the transcript for the sentinels and the marker.
//
// The checks are done in the order begin sentinel, end sentinel, marker. All
// are case sensitive substring matches. For the first missing one, an
// [AssertionError] is returned along with a failed [Verdict].
//
// The logs page indicator is checked last, but only advisory. The dashboard
// may have rendered a state page before the logs page was selected again. If
// it is missing, a warning is recorded and the verdict is still OK.
func Verify(transcript, marker string, meta Metadata) (Verdict, error) {
	verdict := Verdict{Metadata: meta}

	checks := []check{
		{"BEGIN marker", BeginSentinel},
		{"END marker", EndSentinel},
		{fmt.Sprintf("marker '%s'", marker), marker},
	}

	for _, c := range checks {
		if strings.Contains(transcript, c.needle) {
			continue
		}

		err := &AssertionError{Missing: c.name}
		verdict.Diagnostic = err.Error()

		return verdict, err
	}

	if !strings.Contains(transcript, LogsPageIndicator) {
		warning := "snapshot did not include '" + LogsPageIndicator +
			"' (still ok if state page printed)"
		verdict.Warnings = append(verdict.Warnings, warning)

		slog.Warn(warning, slog.String("version", meta.Version))
	}

	verdict.OK = true

	return verdict, nil
}

// Extract returns the text between the first begin sentinel and the
// following end sentinel. It returns false if either is missing.
func Extract(transcript string) (string, bool) {
	_, after, found := strings.Cut(transcript, BeginSentinel)
	if !found {
		return "", false
	}

	body, _, found := strings.Cut(after, EndSentinel)
	if !found {
		return "", false
	}

	// Serial consoles deliver CRLF line endings.
	body = strings.ReplaceAll(body, "\r\n", "\n")

	return strings.Trim(body, "\n"), true
}
