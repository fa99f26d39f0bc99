// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vgadash/vgadash-ci/internal/exitcode"
	"github.com/vgadash/vgadash-ci/internal/harness"
	"github.com/vgadash/vgadash-ci/internal/qemu"
	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

const name = "vgadash-ci"

// Set on build.
var version = "dev"

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func usageError(err error) error {
	return &UsageError{err}
}

// usageArgs marks errors of the given validator as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := validate(cmd, args)
		if err != nil {
			return usageError(err)
		}

		return nil
	}
}

// command is the root command with the state shared by its subcommands.
type command struct {
	*cobra.Command

	flags    *flags
	closeLog func() error
}

func newCommand(cfg IO) *command {
	cmd := &command{
		flags:    newFlags(),
		closeLog: func() error { return nil },
	}

	root := &cobra.Command{
		Use:   name,
		Short: "Build and test the vgadash kernel module in a QEMU guest",
		Long: name + ` builds the vgadash module for an installed kernel, boots it
in a minimal busybox guest and checks the dashboard snapshot printed on the
serial console.

Flags can also be provided via environment variable ` + envArgsVar + ` and via
file ./` + localConfigFile + `, with one argument per line.`,
		Version:       version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			cmd.closeLog = setupLogging(cfg.Stderr, cmd.flags.debug, cmd.flags.logFile)
		},
		RunE: func(rootCmd *cobra.Command, _ []string) error {
			_ = rootCmd.Usage()
			return usageError(ErrNoCommand)
		},
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	root.CompletionOptions.DisableDefaultCmd = true

	cmd.flags.register(root.PersistentFlags())

	subcommands := []struct {
		command harness.Command
		short   string
	}{
		{harness.CommandBuild, "Build the module and print its path"},
		{harness.CommandTest, "Build, boot and verify the dashboard snapshot"},
		{harness.CommandDemo, "Build and boot with a visible display and an interactive shell"},
	}

	for _, sub := range subcommands {
		root.AddCommand(&cobra.Command{
			Use:   string(sub.command),
			Short: sub.short,
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(subCmd *cobra.Command, _ []string) error {
				spec := cmd.flags.specFor(sub.command)

				err := spec.Validate()
				if err != nil {
					return usageError(err)
				}

				_, err = harness.Run(subCmd.Context(), spec, harness.IO{
					Stdin:  cfg.Stdin,
					Stdout: cfg.Stdout,
					Stderr: cfg.Stderr,
				})

				return err
			},
		})
	}

	cmd.Command = root

	return cmd
}

func handleRunError(err error) int {
	if err == nil {
		return exitcode.OK
	}

	code := exitcode.From(err)
	if errors.Is(err, qemu.ErrTimeout) {
		code = exitcode.Timeout
	}

	switch {
	case errors.Is(err, &UsageError{}):
		slog.Error(err.Error(), slog.String("hint", "see "+name+" --help"))
	case errors.Is(err, snapshot.ErrAssertionFailed):
		slog.Error("Snapshot verification failed", slog.Any("error", err))
	default:
		slog.Error(err.Error())
	}

	return code
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	// Logging before flags are parsed goes to stderr with defaults.
	setupLogging(cfg.Stderr, false, "")

	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return handleRunError(usageError(err))
	}

	cmd := newCommand(cfg)
	cmd.SetArgs(args)

	exitCode := handleRunError(cmd.ExecuteContext(ctx))

	err = cmd.closeLog()
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "close log file: %v\n", err)
	}

	return exitCode
}
