// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/vgadash/vgadash-ci/internal/harness"
)

const (
	memMin = 128
	memMax = 16384
)

// flags holds the state bound to the command line flags.
type flags struct {
	spec harness.Spec

	timeoutSeconds uint64
	debug          bool
	logFile        string
}

func newFlags() *flags {
	spec := harness.NewSpec(harness.CommandTest)
	// Set per command by specFor unless given.
	spec.Qemu.Accel = ""

	return &flags{
		spec:           spec,
		timeoutSeconds: uint64(spec.Qemu.Timeout / time.Second),
	}
}

func (f *flags) register(fs *pflag.FlagSet) {
	spec := &f.spec

	fs.StringVar(&spec.Kernel.Version, "kver", spec.Kernel.Version,
		"kernel version to use (newest installed if not set)")

	fs.StringVar(&spec.Kernel.Layout.BootDir, "boot-dir", spec.Kernel.Layout.BootDir,
		"directory with kernel images")

	fs.StringVar(&spec.Kernel.Layout.HeadersDir, "headers-dir", spec.Kernel.Layout.HeadersDir,
		"directory with kernel header trees")

	fs.StringVar(&spec.Module.Dir, "repo", spec.Module.Dir,
		"module source directory")

	fs.StringVar(&spec.Initramfs.OutDir, "out", spec.Initramfs.OutDir,
		"output directory for images and transcripts (default <repo>/out)")

	fs.StringVar(&spec.Initramfs.Busybox, "busybox", spec.Initramfs.Busybox,
		"static busybox executable (searched if not set)")

	fs.StringVar(&spec.Initramfs.Marker, "marker", spec.Initramfs.Marker,
		"marker string injected into /dev/kmsg")

	fs.BoolVar(&spec.Initramfs.Interactive, "interactive", spec.Initramfs.Interactive,
		"drop to shell in guest instead of powering off")

	fs.StringVar(&spec.Qemu.Executable, "qemu-bin", spec.Qemu.Executable,
		"QEMU binary to use")

	fs.Var(&LimitedUintValue{&spec.Qemu.Memory, memMin, memMax, "MB"}, "memory",
		"memory for the guest")

	fs.Var(&spec.Qemu.Accel, "accel",
		"accelerator: auto, kvm, tcg (default tcg for test, auto for demo)")

	fs.Var(&spec.Qemu.Display, "display",
		"QEMU display: none, curses, gtk, sdl")

	fs.Var((*QemuArgList)(&spec.Qemu.ExtraArgs), "qemu-arg",
		"extra QEMU argument as name or name=value, may be used more than once")

	fs.Uint64Var(&f.timeoutSeconds, "timeout", f.timeoutSeconds,
		"guest timeout in seconds, 0 disables it")

	fs.StringVar(&spec.Publish.AMQPURL, "amqp-url", spec.Publish.AMQPURL,
		"AMQP URL to publish test results to")

	fs.StringVar(&spec.Publish.ReportPath, "report", spec.Publish.ReportPath,
		"write the test result as YAML into this file")

	fs.BoolVar(&spec.Publish.KeepTranscript, "keep-transcript", spec.Publish.KeepTranscript,
		"save the serial transcript in the output directory")

	fs.BoolVar(&f.debug, "debug", f.debug,
		"enable debug output")

	fs.StringVar(&f.logFile, "log-file", f.logFile,
		"also write log records into this file")
}

// specFor returns the spec for the given command.
func (f *flags) specFor(command harness.Command) *harness.Spec {
	spec := f.spec
	spec.Command = command
	spec.Qemu.Timeout = time.Duration(f.timeoutSeconds) * time.Second

	if spec.Qemu.Accel == "" {
		spec.Qemu.Accel = harness.DefaultAccel(command)
	}

	return &spec
}
