// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgadash/vgadash-ci/internal/exitcode"
	"github.com/vgadash/vgadash-ci/internal/harness"
	"github.com/vgadash/vgadash-ci/internal/qemu"
	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

func TestHandleRunError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil",
			expected: exitcode.OK,
		},
		{
			name:     "usage",
			err:      usageError(ErrNoCommand),
			expected: exitcode.Usage,
		},
		{
			name:     "assertion failed",
			err:      fmt.Errorf("verify: %w", &snapshot.AssertionError{Missing: "END marker"}),
			expected: exitcode.Failure,
		},
		{
			name:     "timeout",
			err:      fmt.Errorf("boot guest: %w", &qemu.TimeoutError{Timeout: time.Second}),
			expected: exitcode.Timeout,
		},
		{
			name:     "timeout joined with report error",
			err:      errors.Join(&qemu.TimeoutError{Timeout: time.Second}, errors.New("write report")),
			expected: exitcode.Timeout,
		},
		{
			name:     "other",
			err:      errors.New("make failed"),
			expected: exitcode.Failure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handleRunError(tt.err))
		})
	}
}

func TestUsageError(t *testing.T) {
	err := fmt.Errorf("parse: %w", usageError(ErrNoCommand))

	assert.ErrorIs(t, err, &UsageError{})
	assert.ErrorIs(t, err, ErrNoCommand)
	assert.Equal(t, exitcode.Usage, exitcode.From(err))
	assert.Equal(t, "parse: no command given", err.Error())
}

func TestFlags_SpecFor_Accel(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		command  harness.Command
		expected qemu.Accel
	}{
		{
			name:     "test default",
			command:  harness.CommandTest,
			expected: qemu.AccelTCG,
		},
		{
			name:     "demo default",
			command:  harness.CommandDemo,
			expected: qemu.AccelAuto,
		},
		{
			name:     "test given",
			args:     []string{"--accel", "kvm"},
			command:  harness.CommandTest,
			expected: qemu.AccelKVM,
		},
		{
			name:     "demo given",
			args:     []string{"--accel", "tcg"},
			command:  harness.CommandDemo,
			expected: qemu.AccelTCG,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlags()
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f.register(fs)

			require.NoError(t, fs.Parse(tt.args))
			assert.Equal(t, tt.expected, f.specFor(tt.command).Qemu.Accel)
		})
	}
}
