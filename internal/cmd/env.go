// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

const (
	envArgsVar      = "VGADASH_ARGS"
	localConfigFile = ".vgadash-args"
)

// EnvArgs returns arguments from the environment.
func EnvArgs() []string {
	return strings.Fields(os.Getenv(envArgsVar))
}

// LocalConfigArgs returns arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be used
// and are expanded with [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	for _, line := range strings.Split(os.ExpandEnv(string(conf)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs returns the command line args with the args from the
// environment and the local config file inserted after the subcommand.
//
// Command line args come last, so they take precedence. If args does not
// start with a subcommand, the additional args are prepended.
func MergedArgs(args []string, fsys fs.FS, file string) ([]string, error) {
	localArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config %s: %w", file, err)
	}

	extra := slices.Concat(EnvArgs(), localArgs)

	// Never nil, as cobra falls back to os.Args for nil args.
	merged := make([]string, 0, len(extra)+len(args))

	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		merged = append(merged, extra...)
		return append(merged, args...), nil
	}

	merged = append(merged, args[0])
	merged = append(merged, extra...)

	return append(merged, args[1:]...), nil
}
