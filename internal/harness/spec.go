// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/vgadash/vgadash-ci/internal/kernel"
	"github.com/vgadash/vgadash-ci/internal/publish"
	"github.com/vgadash/vgadash-ci/internal/qemu"
)

// Command is the action of a [Run].
type Command string

const (
	// CommandBuild only builds the module.
	CommandBuild Command = "build"

	// CommandTest builds and boots the module and verifies the transcript.
	CommandTest Command = "test"

	// CommandDemo builds and boots the module with a visible display and the
	// terminal attached to the guest's shell.
	CommandDemo Command = "demo"
)

// Commands lists all known [Command]s.
var Commands = []Command{CommandBuild, CommandTest, CommandDemo}

const (
	// DefaultMarker is the marker injected into the guest's kernel log.
	DefaultMarker = "HELLO_FROM_VGADASH_TEST"

	// DefaultTimeout is the time budget of the guest.
	DefaultTimeout = 60 * time.Second

	// DefaultOutDir is the output directory relative to the module
	// directory.
	DefaultOutDir = "out"
)

// Spec describes a single [Run].
type Spec struct {
	Command   Command
	Kernel    Kernel
	Module    Module
	Initramfs Initramfs
	Qemu      Qemu
	Publish   Publish
}

// Kernel selects the kernel to build for and boot.
type Kernel struct {
	// Version overrides the version detection if set.
	Version string

	// Layout is where kernel images and headers are installed.
	Layout kernel.Layout
}

// Module describes the module source.
type Module struct {
	// Dir is the module source directory containing the Makefile.
	Dir string

	// Make is the build tool. Empty means "make".
	Make string
}

// Initramfs describes the guest image.
type Initramfs struct {
	// OutDir is where images and transcripts are written. Empty means
	// [DefaultOutDir] in [Module.Dir].
	OutDir string

	// Busybox overrides the busybox executable.
	Busybox string

	// Marker is injected into the guest's kernel log and expected in the
	// snapshot.
	Marker string

	// Interactive drops the guest into a shell instead of powering off. It
	// is implied by [CommandDemo].
	Interactive bool
}

// Qemu describes the guest machine.
type Qemu struct {
	qemu.CommandSpec

	// Timeout is the time budget of the guest. Zero means no limit.
	Timeout time.Duration
}

// Publish describes where results go besides the console.
type Publish struct {
	// AMQPURL is the broker the result is published to, if set.
	AMQPURL string

	// Dial overrides how the broker session is opened.
	Dial publish.DialFunc

	// ReportPath is the path of the YAML report, if set.
	ReportPath string

	// KeepTranscript writes the guest's transcript into the output
	// directory.
	KeepTranscript bool
}

// NewSpec returns a [Spec] for the given command with defaults set.
func NewSpec(command Command) Spec {
	return Spec{
		Command: command,
		Kernel: Kernel{
			Layout: kernel.DefaultLayout,
		},
		Module: Module{
			Dir: ".",
		},
		Initramfs: Initramfs{
			Marker: DefaultMarker,
		},
		Qemu: Qemu{
			CommandSpec: qemu.CommandSpec{
				Executable: qemu.DefaultExecutable,
				Memory:     qemu.DefaultMemory,
				Accel:      DefaultAccel(command),
				Display:    qemu.DisplayNone,
			},
			Timeout: DefaultTimeout,
		},
	}
}

// DefaultAccel returns the accelerator used for the command if none is
// given. Tests boot with [qemu.AccelTCG] like in the CI, all other commands
// use [qemu.AccelAuto].
func DefaultAccel(command Command) qemu.Accel {
	if command == CommandTest {
		return qemu.AccelTCG
	}

	return qemu.AccelAuto
}

// Validate checks the spec for values that can not work.
func (s *Spec) Validate() error {
	if !slices.Contains(Commands, s.Command) {
		return &ValidationError{"unknown command " + string(s.Command)}
	}

	if s.Module.Dir == "" {
		return &ValidationError{"no module dir given"}
	}

	if s.Qemu.Timeout < 0 {
		return &ValidationError{"timeout must not be negative"}
	}

	// Kernel and initramfs are not known yet, but only names can collide.
	_, err := qemu.BuildArgumentStrings(s.Qemu.Arguments())
	if err != nil {
		return fmt.Errorf("qemu arguments: %w", err)
	}

	return nil
}

func (s *Spec) outDir() string {
	if s.Initramfs.OutDir != "" {
		return s.Initramfs.OutDir
	}

	return filepath.Join(s.Module.Dir, DefaultOutDir)
}

func (s *Spec) interactive() bool {
	return s.Initramfs.Interactive || s.Command == CommandDemo
}

// display returns the display backend. A demo without display would show
// nothing, so curses is used in this case.
func (s *Spec) display() qemu.Display {
	if s.Command == CommandDemo && s.Qemu.Display == qemu.DisplayNone {
		return qemu.DisplayCurses
	}

	return s.Qemu.Display
}

// TranscriptPath returns the path the transcript for the given version is
// written to if [Publish.KeepTranscript] is set.
func TranscriptPath(outDir, version string) string {
	return filepath.Join(outDir, "serial-"+version+".log")
}
