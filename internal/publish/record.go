// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package publish

import (
	"time"

	"github.com/google/uuid"

	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

// Project is the project name set in every [Record].
const Project = "vgadash"

// Record is the published form of a test outcome.
type Record struct {
	RunID     string    `json:"run_id"             yaml:"run_id"`
	Timestamp time.Time `json:"timestamp"          yaml:"timestamp"`
	Project   string    `json:"project"            yaml:"project"`
	Command   string    `json:"cmd"                yaml:"cmd"`
	Version   string    `json:"kver"               yaml:"kver"`
	OK        bool      `json:"ok"                 yaml:"ok"`
	Marker    string    `json:"marker"             yaml:"marker"`
	Error     *string   `json:"error"              yaml:"error"`
	Warnings  []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Snapshot is the dashboard snapshot. It is only written into reports.
	Snapshot string `json:"-" yaml:"snapshot,omitempty"`
}

// NewRecord creates a [Record] with a new run ID for the given verdict.
//
// If err is not nil, it is the reason the test failed and the record is not
// OK, even if the verdict says so.
func NewRecord(verdict snapshot.Verdict, err error) Record {
	record := Record{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Project:   Project,
		Command:   verdict.Metadata.Command,
		Version:   verdict.Metadata.Version,
		OK:        verdict.OK && err == nil,
		Marker:    verdict.Metadata.Marker,
		Warnings:  verdict.Warnings,
	}

	if err != nil {
		msg := err.Error()
		record.Error = &msg
	}

	return record
}
