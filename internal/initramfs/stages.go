// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// StageList is the name of the stage listing the tree.
	StageList = "list"

	// StageArchive is the name of the stage writing the CPIO archive.
	StageArchive = "archive"

	// StageCompress is the name of the stage compressing the archive.
	StageCompress = "compress"
)

// DefaultStages returns the stages serializing the tree at root into a gzip
// compressed newc CPIO archive.
func DefaultStages(root string) []Stage {
	return []Stage{
		ListStage(root),
		ArchiveStage(root),
		CompressStage(gzip.BestCompression),
	}
}

// ListStage returns a [Stage] that writes the names of all files in the tree
// at root. Names are relative to root, prefixed with "./" and terminated by a
// NUL byte, so any valid file name survives. The root itself is listed as
// ".". Entries are listed in lexical order, parents before children.
func ListStage(root string) Stage {
	return Stage{
		Name: StageList,
		Run: func(ctx context.Context, dst io.Writer, _ io.Reader, _ io.Writer) error {
			out := bufio.NewWriter(dst)

			err := filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if ctx.Err() != nil {
					return ctx.Err()
				}

				rel, err := filepath.Rel(root, path)
				if err != nil {
					return fmt.Errorf("relative path: %w", err)
				}

				_, err = out.WriteString(archiveName(rel) + "\x00")

				return err
			})
			if err != nil {
				return fmt.Errorf("walk: %w", err)
			}

			return out.Flush()
		},
	}
}

func archiveName(rel string) string {
	if rel == "." {
		return rel
	}

	return "./" + filepath.ToSlash(rel)
}

// ArchiveStage returns a [Stage] that reads NUL terminated names relative to
// root and writes a newc CPIO archive of these files. Each archived name is
// written to the diagnostic output.
func ArchiveStage(root string) Stage {
	return Stage{
		Name: StageArchive,
		Run: func(ctx context.Context, dst io.Writer, src io.Reader, diag io.Writer) error {
			writer := NewCPIOWriter(dst)

			names := bufio.NewScanner(src)
			names.Split(scanNUL)

			for names.Scan() {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				name := names.Text()

				err := archiveFile(writer, root, name)
				if err != nil {
					fmt.Fprintf(diag, "%s: %v\n", name, err)
					return err
				}

				fmt.Fprintln(diag, name)
			}

			err := names.Err()
			if err != nil {
				return fmt.Errorf("read names: %w", err)
			}

			return writer.Close()
		},
	}
}

func archiveFile(writer *CPIOWriter, root, name string) error {
	path := filepath.Join(root, filepath.FromSlash(name))

	info, err := os.Lstat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	switch mode := info.Mode(); {
	case mode.IsDir():
		return writer.WriteDirectory(name, mode)
	case mode&fs.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return writer.WriteLink(name, target)
	case mode.IsRegular():
		file, err := os.Open(path)
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer file.Close()

		return writer.WriteRegular(name, file, info.Size(), mode)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, mode.Type())
	}
}

// scanNUL is a [bufio.SplitFunc] for NUL terminated tokens. A final token
// without terminator is returned as well.
func scanNUL(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		return idx + 1, data[:idx], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// CompressStage returns a [Stage] that gzip compresses its input with the
// given level. The gzip header carries neither file name nor modification
// time.
func CompressStage(level int) Stage {
	return Stage{
		Name: StageCompress,
		Run: func(_ context.Context, dst io.Writer, src io.Reader, _ io.Writer) error {
			compressor, err := gzip.NewWriterLevel(dst, level)
			if err != nil {
				return fmt.Errorf("gzip writer: %w", err)
			}

			_, err = io.Copy(compressor, src)
			if err != nil {
				_ = compressor.Close()
				return fmt.Errorf("compress: %w", err)
			}

			err = compressor.Close()
			if err != nil {
				return fmt.Errorf("close: %w", err)
			}

			return nil
		},
	}
}
