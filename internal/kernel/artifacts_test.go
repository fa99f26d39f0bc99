// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package kernel_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgadash/vgadash-ci/internal/kernel"
)

func osDirFS(t *testing.T, name string) fs.FS {
	t.Helper()

	return os.DirFS(filepath.Join(t.TempDir(), name))
}

func newLayout(t *testing.T, image, headers bool) kernel.Layout {
	t.Helper()

	layout := kernel.Layout{
		BootDir:    t.TempDir(),
		HeadersDir: t.TempDir(),
	}

	if image {
		path := layout.ImagePath("6.1.0")
		require.NoError(t, os.WriteFile(path, []byte("bzImage"), 0o600))
	}

	if headers {
		require.NoError(t, os.Mkdir(layout.HeadersPath("6.1.0"), 0o755))
	}

	return layout
}

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t, "/boot/vmlinuz-6.1.0-13-amd64",
		kernel.DefaultLayout.ImagePath("6.1.0-13-amd64"))
	assert.Equal(t, "/usr/src/linux-headers-6.1.0-13-amd64",
		kernel.DefaultLayout.HeadersPath("6.1.0-13-amd64"))
}

func TestLocate(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		layout := newLayout(t, true, true)

		artifacts, err := kernel.Locate("6.1.0", layout)
		require.NoError(t, err)

		assert.Equal(t, kernel.Artifacts{
			Version: "6.1.0",
			Image:   layout.ImagePath("6.1.0"),
			Headers: layout.HeadersPath("6.1.0"),
		}, artifacts)
	})

	tests := []struct {
		name         string
		image        bool
		headers      bool
		expectedKind string
	}{
		{name: "image missing", headers: true, expectedKind: "image"},
		{name: "headers missing", image: true, expectedKind: "headers"},
		{name: "both missing", expectedKind: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := newLayout(t, tt.image, tt.headers)

			_, err := kernel.Locate("6.1.0", layout)
			require.ErrorIs(t, err, kernel.ErrMissingArtifact)

			var missingErr *kernel.MissingArtifactError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.expectedKind, missingErr.Kind)
			assert.Contains(t, err.Error(), missingErr.Path)
		})
	}
}
