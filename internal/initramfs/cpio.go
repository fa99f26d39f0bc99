// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/cavaliergopher/cpio"
)

const (
	dirLinks     = 2
	regularLinks = 1
)

// epoch is used as modification time for all entries, so archives of the
// same tree are identical no matter when they are built.
var epoch = time.Unix(0, 0)

// CPIOWriter writes newc CPIO archive entries with normalized metadata.
//
// Ownership is root for all entries and modification times are zeroed.
type CPIOWriter struct {
	cpioWriter *cpio.Writer
}

// NewCPIOWriter creates a new archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{cpio.NewWriter(w)}
}

// Close writes the trailer and flushes the archive.
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func (w *CPIOWriter) writeHeader(hdr *cpio.Header) error {
	hdr.ModTime = epoch

	err := w.cpioWriter.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", hdr.Name, err)
	}

	return nil
}

// WriteDirectory adds a directory entry.
func (w *CPIOWriter) WriteDirectory(path string, perm fs.FileMode) error {
	return w.writeHeader(&cpio.Header{
		Name:  path,
		Mode:  cpio.TypeDir | cpio.FileMode(perm.Perm()),
		Links: dirLinks,
	})
}

// WriteLink adds a symbolic link pointing to target.
func (w *CPIOWriter) WriteLink(path, target string) error {
	err := w.writeHeader(&cpio.Header{
		Name:  path,
		Mode:  cpio.TypeSymlink | cpio.ModePerm,
		Links: regularLinks,
		Size:  int64(len(target)),
	})
	if err != nil {
		return err
	}

	// Body of a link is the path of the target file.
	_, err = w.cpioWriter.Write([]byte(target))
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}

// WriteRegular adds a regular file with size bytes read from source.
func (w *CPIOWriter) WriteRegular(
	path string,
	source io.Reader,
	size int64,
	perm fs.FileMode,
) error {
	err := w.writeHeader(&cpio.Header{
		Name:  path,
		Mode:  cpio.TypeReg | cpio.FileMode(perm.Perm()),
		Links: regularLinks,
		Size:  size,
	})
	if err != nil {
		return err
	}

	_, err = io.CopyN(w.cpioWriter, source, size)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}
