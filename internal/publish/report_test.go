// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package publish_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vgadash/vgadash-ci/internal/publish"
	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "result.yaml")

	verdict := okVerdict()
	verdict.Warnings = []string{"snapshot did not include 'page=logs'"}

	record := publish.NewRecord(verdict, nil)
	record.Snapshot = "page=logs\nHELLO_FROM_VGADASH_TEST"

	require.NoError(t, publish.WriteReport(path, record))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var actual publish.Record

	require.NoError(t, yaml.Unmarshal(data, &actual))
	assert.Equal(t, record.RunID, actual.RunID)
	assert.True(t, record.Timestamp.Equal(actual.Timestamp))
	assert.Equal(t, record.Version, actual.Version)
	assert.Equal(t, record.Warnings, actual.Warnings)
	assert.Equal(t, record.Snapshot, actual.Snapshot)
	assert.Nil(t, actual.Error)

	assert.Contains(t, string(data), "error: null\n")
	assert.Contains(t, string(data), "kver: 6.8.0-45-generic\n")
}

func TestWriteReport_Failed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")

	verdict := okVerdict()
	verdict.OK = false
	record := publish.NewRecord(verdict, &snapshot.AssertionError{Missing: "BEGIN marker"})

	require.NoError(t, publish.WriteReport(path, record))

	// Replaced, not appended.
	require.NoError(t, publish.WriteReport(path, record))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var actual map[string]any

	require.NoError(t, yaml.Unmarshal(data, &actual))
	assert.Equal(t, false, actual["ok"])
	assert.Equal(t, "did not find BEGIN marker in serial output", actual["error"])
}
