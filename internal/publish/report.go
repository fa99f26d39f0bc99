// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const reportIndent = 2

// WriteReport writes the record as YAML document into the file at path. An
// existing file is replaced.
func WriteReport(path string, record Record) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(reportIndent)

	err = encoder.Encode(record)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	return nil
}
