// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// setupLogging sets the default logger. If logFile is not empty, records are
// also written into this file, which is rotated once it grows too large.
//
// The returned function closes the log file.
func setupLogging(writer io.Writer, debug bool, logFile string) func() error {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	closeFn := func() error { return nil }

	if logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}

		writer = io.MultiWriter(writer, rotated)
		closeFn = rotated.Close
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)))

	return closeFn
}
