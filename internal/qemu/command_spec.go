// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"
	"strconv"
)

const (
	// DefaultExecutable is the QEMU binary used if none is set.
	DefaultExecutable = "qemu-system-x86_64"

	// DefaultMemory is the guest memory in MB used if none is set.
	DefaultMemory = 512

	// KernelCmdline is passed to the guest kernel. The serial console is
	// the only output channel of the guest.
	KernelCmdline = "console=ttyS0,115200 rdinit=/init nomodeset " +
		"ignore_loglevel loglevel=7"
)

// CommandSpec defines the QEMU command to run.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the kernel image to boot.
	Kernel string

	// Path to the initramfs image to boot with.
	Initramfs string

	// Memory for the machine in MB.
	Memory uint64

	// Accelerator to use. [AccelAuto] is resolved by [CommandSpec.AddDefaults].
	Accel Accel

	// Display backend. Anything but [DisplayNone] renders the guest's VGA
	// console, which is where the dashboard is drawn.
	Display Display

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the
	// command itself or an error is returned by [CommandSpec.Args].
	ExtraArgs []Argument
}

// AddDefaults sets default values for all fields that are not set yet and
// resolves [AccelAuto].
func (s *CommandSpec) AddDefaults() {
	if s.Executable == "" {
		s.Executable = DefaultExecutable
	}

	if s.Memory == 0 {
		s.Memory = DefaultMemory
	}

	if s.Display == "" {
		s.Display = DisplayNone
	}

	s.Accel = s.Accel.Resolve()
}

// Validate checks the spec for missing or unknown values.
func (s *CommandSpec) Validate() error {
	switch {
	case s.Executable == "":
		return &ArgumentError{"no qemu executable given"}
	case s.Kernel == "":
		return &ArgumentError{"no kernel given"}
	case s.Initramfs == "":
		return &ArgumentError{"no initramfs given"}
	case s.Memory == 0:
		return &ArgumentError{"no memory given"}
	case s.Accel != AccelKVM && s.Accel != AccelTCG:
		return &ArgumentError{"accel not resolved: " + string(s.Accel)}
	case !slices.Contains(knownDisplays, s.Display):
		return &ArgumentError{"unknown display: " + string(s.Display)}
	}

	return nil
}

// Arguments returns the argument list for the QEMU command.
func (s *CommandSpec) Arguments() []Argument {
	args := []Argument{
		UniqueArg("m", strconv.FormatUint(s.Memory, 10)),
		UniqueArg("accel", string(s.Accel)),
		UniqueArg("kernel", s.Kernel),
		UniqueArg("initrd", s.Initramfs),
		UniqueArg("append", KernelCmdline),
		// Serial console is the transcript.
		UniqueArg("serial", "stdio"),
		// Guest must not reboot.
		UniqueArg("no-reboot"),
		UniqueArg("display", string(s.Display)),
		// Monitor would compete with the serial console for stdio.
		UniqueArg("monitor", "none"),
	}

	return append(args, s.ExtraArgs...)
}

// Args validates the spec and compiles the argument strings.
func (s *CommandSpec) Args() ([]string, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	return BuildArgumentStrings(s.Arguments())
}
