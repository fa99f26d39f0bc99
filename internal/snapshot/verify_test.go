// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package snapshot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

const testMarker = "HELLO_FROM_VGADASH_TEST"

func transcript(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestVerify(t *testing.T) {
	meta := snapshot.Metadata{
		Version: "6.1.0",
		Marker:  testMarker,
		Command: "test",
	}

	tests := []struct {
		name             string
		transcript       string
		marker           string
		expectedMissing  string
		expectedWarnings int
	}{
		{
			name: "complete",
			transcript: transcript(
				"[    0.000000] Linux version 6.1.0",
				snapshot.BeginSentinel,
				"vgadash page=logs",
				"[    1.234567] "+testMarker,
				snapshot.EndSentinel,
				"[init] done",
			),
			marker: testMarker,
		},
		{
			name: "end missing",
			transcript: transcript(
				snapshot.BeginSentinel,
				"vgadash page=logs",
				testMarker,
			),
			marker:          testMarker,
			expectedMissing: "END marker",
		},
		{
			name: "begin missing takes precedence",
			transcript: transcript(
				"[init] insmod failed",
			),
			marker:          testMarker,
			expectedMissing: "BEGIN marker",
		},
		{
			name: "wrong marker",
			transcript: transcript(
				snapshot.BeginSentinel,
				"vgadash page=logs",
				"HELLO_FROM_SOMEONE_ELSE",
				snapshot.EndSentinel,
			),
			marker:          testMarker,
			expectedMissing: "marker '" + testMarker + "'",
		},
		{
			name: "marker case sensitive",
			transcript: transcript(
				snapshot.BeginSentinel,
				"page=logs",
				strings.ToLower(testMarker),
				snapshot.EndSentinel,
			),
			marker:          testMarker,
			expectedMissing: "marker '" + testMarker + "'",
		},
		{
			name: "logs page missing is advisory",
			transcript: transcript(
				snapshot.BeginSentinel,
				"vgadash page=state",
				testMarker,
				snapshot.EndSentinel,
			),
			marker:           testMarker,
			expectedWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := snapshot.Verify(tt.transcript, tt.marker, meta)
			assert.Equal(t, meta, verdict.Metadata)
			assert.Len(t, verdict.Warnings, tt.expectedWarnings)

			if tt.expectedMissing == "" {
				require.NoError(t, err)
				assert.True(t, verdict.OK)
				assert.Empty(t, verdict.Diagnostic)

				return
			}

			require.ErrorIs(t, err, snapshot.ErrAssertionFailed)

			var assertionErr *snapshot.AssertionError
			require.ErrorAs(t, err, &assertionErr)
			assert.Equal(t, tt.expectedMissing, assertionErr.Missing)
			assert.False(t, verdict.OK)
			assert.Equal(t, err.Error(), verdict.Diagnostic)
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		expected   string
		found      bool
	}{
		{
			name: "found",
			transcript: transcript(
				"boot",
				snapshot.BeginSentinel,
				"line 1",
				"line 2",
				snapshot.EndSentinel,
				"poweroff",
			),
			expected: "line 1\nline 2",
			found:    true,
		},
		{
			name:       "empty snapshot",
			transcript: transcript(snapshot.BeginSentinel, snapshot.EndSentinel),
			found:      true,
		},
		{
			name:       "no end",
			transcript: transcript(snapshot.BeginSentinel, "line 1"),
		},
		{
			name:       "end before begin",
			transcript: transcript(snapshot.EndSentinel, snapshot.BeginSentinel),
		},
		{
			name: "nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, found := snapshot.Extract(tt.transcript)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
