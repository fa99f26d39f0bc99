// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"strings"

	"github.com/vgadash/vgadash-ci/internal/qemu"
)

// ErrEmptyArgName is returned if an extra QEMU argument has no name.
var ErrEmptyArgName = errors.New("empty argument name")

// QemuArgList is a flag value collecting extra QEMU arguments. Each value is
// "name" or "name=value". A leading dash of the name is optional.
//
// The arguments are repeatable, so they may be given multiple times with
// different values. They collide with the arguments the command sets itself.
type QemuArgList []qemu.Argument

// String implements pflag.Value.
func (l *QemuArgList) String() string {
	strs := make([]string, 0, len(*l))
	for _, arg := range *l {
		strs = append(strs, arg.String())
	}

	return strings.Join(strs, ",")
}

// Set implements pflag.Value.
func (l *QemuArgList) Set(s string) error {
	name, value, _ := strings.Cut(s, "=")

	name = strings.TrimLeft(name, "-")
	if name == "" {
		return ErrEmptyArgName
	}

	*l = append(*l, qemu.RepeatableArg(name, value))

	return nil
}

// Type implements pflag.Value.
func (*QemuArgList) Type() string {
	return "name=value"
}
