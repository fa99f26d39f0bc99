// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vgadash/vgadash-ci/internal/exitcode"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		other  error
		assert assert.BoolAssertionFunc
	}{
		{
			name:   "nil",
			assert: assert.False,
		},
		{
			name:   "same",
			other:  exitcode.Error(42),
			assert: assert.True,
		},
		{
			name:   "other",
			other:  assert.AnError,
			assert: assert.False,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exitcode.Error(0)
			tt.assert(t, err.Is(tt.other))
		})
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "no error",
			expected: exitcode.OK,
		},
		{
			name:     "an error",
			err:      assert.AnError,
			expected: exitcode.Failure,
		},
		{
			name:     "exit error",
			err:      exitcode.Error(exitcode.Usage),
			expected: exitcode.Usage,
		},
		{
			name:     "wrapped exit error",
			err:      fmt.Errorf("test: %w", exitcode.Error(exitcode.Timeout)),
			expected: exitcode.Timeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitcode.From(tt.err))
		})
	}
}
