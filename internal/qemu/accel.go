// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sys/unix"
)

const kvmDevice = "/dev/kvm"

// Accel is the QEMU accelerator used for the guest.
type Accel string

const (
	// AccelAuto resolves to [AccelKVM] if usable, [AccelTCG] otherwise.
	AccelAuto Accel = "auto"

	// AccelKVM uses hardware virtualization.
	AccelKVM Accel = "kvm"

	// AccelTCG uses software emulation. It always works, but is slow.
	AccelTCG Accel = "tcg"
)

var knownAccels = []Accel{AccelAuto, AccelKVM, AccelTCG}

// String implements [fmt.Stringer] and pflag.Value.
func (a *Accel) String() string {
	return string(*a)
}

// Set implements pflag.Value.
func (a *Accel) Set(s string) error {
	accel := Accel(s)
	if !slices.Contains(knownAccels, accel) {
		return &ArgumentError{"unknown accel " + s + ", must be one of " + joinValues(knownAccels)}
	}

	*a = accel

	return nil
}

// Type implements pflag.Value.
func (*Accel) Type() string {
	return "accel"
}

// Resolve returns the concrete accelerator. [AccelAuto] and the empty value
// resolve to [AccelKVM] if KVM is usable on this host.
func (a Accel) Resolve() Accel {
	if a != AccelAuto && a != "" {
		return a
	}

	if KVMAvailable() {
		return AccelKVM
	}

	return AccelTCG
}

// KVMAvailable checks if the KVM device is usable by the current user for
// guests of the host's architecture.
func KVMAvailable() bool {
	if runtime.GOARCH != "amd64" {
		return false
	}

	return unix.Access(kvmDevice, unix.R_OK|unix.W_OK) == nil
}

// Display is the QEMU display backend.
type Display string

const (
	// DisplayNone runs headless.
	DisplayNone Display = "none"

	// DisplayCurses renders the VGA text console in the terminal.
	DisplayCurses Display = "curses"

	// DisplayGTK opens a GTK window.
	DisplayGTK Display = "gtk"

	// DisplaySDL opens an SDL window.
	DisplaySDL Display = "sdl"
)

var knownDisplays = []Display{DisplayNone, DisplayCurses, DisplayGTK, DisplaySDL}

// String implements [fmt.Stringer] and pflag.Value.
func (d *Display) String() string {
	return string(*d)
}

// Set implements pflag.Value.
func (d *Display) Set(s string) error {
	display := Display(s)
	if !slices.Contains(knownDisplays, display) {
		return &ArgumentError{"unknown display " + s + ", must be one of " + joinValues(knownDisplays)}
	}

	*d = display

	return nil
}

// Type implements pflag.Value.
func (*Display) Type() string {
	return "display"
}

func joinValues[T ~string](values []T) string {
	strs := make([]string, 0, len(values))
	for _, value := range values {
		strs = append(strs, string(value))
	}

	return strings.Join(strs, "|")
}
