// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgadash/vgadash-ci/internal/qemu"
)

func TestArgumentString(t *testing.T) {
	assert.Equal(t, "-no-reboot", qemu.UniqueArg("no-reboot").String())
	assert.Equal(t, "-m 512", qemu.UniqueArg("m", "512").String())
	assert.Equal(t, "-device virtconsole,chardev=con0",
		qemu.RepeatableArg("device", "virtconsole", "chardev=con0").String())
}

func TestBuildArgumentStrings(t *testing.T) {
	tests := []struct {
		name     string
		args     []qemu.Argument
		expected []string
		wantErr  bool
	}{
		{
			name:     "empty",
			expected: []string{},
		},
		{
			name: "builds",
			args: []qemu.Argument{
				qemu.UniqueArg("kernel", "vmlinuz"),
				qemu.UniqueArg("initrd", "boot"),
				qemu.UniqueArg("yes"),
			},
			expected: []string{
				"-kernel", "vmlinuz",
				"-initrd", "boot",
				"-yes",
			},
		},
		{
			name: "repeatable with different values",
			args: []qemu.Argument{
				qemu.RepeatableArg("device", "a"),
				qemu.RepeatableArg("device", "b"),
			},
			expected: []string{
				"-device", "a",
				"-device", "b",
			},
		},
		{
			name: "unique collision",
			args: []qemu.Argument{
				qemu.UniqueArg("kernel", "vmlinuz"),
				qemu.UniqueArg("kernel", "bsd"),
			},
			wantErr: true,
		},
		{
			name: "repeatable collision",
			args: []qemu.Argument{
				qemu.RepeatableArg("device", "a"),
				qemu.RepeatableArg("device", "a"),
			},
			wantErr: true,
		},
		{
			name: "repeatable collides with unique",
			args: []qemu.Argument{
				qemu.UniqueArg("serial", "stdio"),
				qemu.RepeatableArg("serial", "file:/dev/null"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := qemu.BuildArgumentStrings(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, qemu.ErrArgumentCollision)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
