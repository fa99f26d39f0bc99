// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// readInterpreter fetches the ELF interpreter path from the ELF file. It
// returns the empty string if there is none, which is the case for statically
// linked executables.
func readInterpreter(path string) (string, error) {
	elfFile, err := elf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open elf: %w", err)
	}
	defer elfFile.Close()

	for _, prog := range elfFile.Progs {
		if prog.Type != elf.PT_INTERP {
			continue
		}

		buf := make([]byte, prog.Filesz)

		_, err := prog.Open().Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read interpreter: %w", err)
		}

		interpreter := unix.ByteSliceToString(buf)
		if interpreter != "" {
			return interpreter, nil
		}
	}

	return "", nil
}
