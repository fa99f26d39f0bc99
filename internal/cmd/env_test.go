// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgadash/vgadash-ci/internal/cmd"
)

func TestEnvArgs(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		output []string
	}{
		{
			name:   "empty",
			env:    "",
			output: []string{},
		},
		{
			name:   "multiple args",
			env:    "--kver 6.8.0 --debug",
			output: []string{"--kver", "6.8.0", "--debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VGADASH_ARGS", tt.env)
			assert.Equal(t, tt.output, cmd.EnvArgs())
		})
	}
}

func TestLocalConfigArgs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		expected []string
	}{
		{
			name:     "empty",
			content:  "",
			expected: []string{},
		},
		{
			name:     "single line",
			content:  "--timeout=120\n--marker=HELLO WORLD",
			expected: []string{"--timeout=120", "--marker=HELLO WORLD"},
		},
		{
			name:     "multiple lines",
			content:  "--kver\n6.8.0\n\n--accel\ntcg\n",
			expected: []string{"--kver", "6.8.0", "--accel", "tcg"},
		},
		{
			name:     "with env vars",
			content:  "--amqp-url=${BROKER}\n--report=$OUT/report.yaml\n--busybox=${NOPE}/busybox\n",
			env:      map[string]string{"BROKER": "amqp://rabbitmq", "OUT": "/tmp"},
			expected: []string{"--amqp-url=amqp://rabbitmq", "--report=/tmp/report.yaml", "--busybox=/busybox"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFS := fstest.MapFS{
				"conf": &fstest.MapFile{
					Data: []byte(tt.content),
				},
			}

			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			content, err := cmd.LocalConfigArgs(testFS, "conf")
			require.NoError(t, err)

			assert.Equal(t, tt.expected, content)
		})
	}
}

func TestLocalConfigArgs_Missing(t *testing.T) {
	content, err := cmd.LocalConfigArgs(fstest.MapFS{}, ".vgadash-args")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestMergedArgs_Empty(t *testing.T) {
	t.Setenv("VGADASH_ARGS", "")

	actual, err := cmd.MergedArgs(nil, fstest.MapFS{}, ".vgadash-args")
	require.NoError(t, err)
	assert.NotNil(t, actual)
	assert.Empty(t, actual)
}

func TestMergedArgs(t *testing.T) {
	testFS := fstest.MapFS{
		".vgadash-args": &fstest.MapFile{
			Data: []byte("--accel\ntcg\n"),
		},
	}

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no args",
			expected: []string{"--debug", "--accel", "tcg"},
		},
		{
			name:     "after subcommand",
			args:     []string{"test", "--accel", "kvm"},
			expected: []string{"test", "--debug", "--accel", "tcg", "--accel", "kvm"},
		},
		{
			name:     "flags first",
			args:     []string{"--kver", "6.8.0", "build"},
			expected: []string{"--debug", "--accel", "tcg", "--kver", "6.8.0", "build"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VGADASH_ARGS", "--debug")

			actual, err := cmd.MergedArgs(tt.args, testFS, ".vgadash-args")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
