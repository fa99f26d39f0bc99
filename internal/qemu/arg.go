// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Argument is a QEMU argument with or without value.
//
// An argument is either unique, so its name may occur only once in a command
// line, or repeatable, so only identical name and value pairs collide.
type Argument struct {
	name       string
	value      string
	repeatable bool
}

// UniqueArg returns an [Argument] whose name may be used only once.
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// RepeatableArg returns an [Argument] whose name may be used multiple times
// with different values.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:       name,
		value:      strings.Join(value, ","),
		repeatable: true,
	}
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	if a.value == "" {
		return "-" + a.name
	}

	return "-" + a.name + " " + a.value
}

// Name returns the name of the [Argument] without leading dash.
func (a Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a Argument) Value() string {
	return a.value
}

// collides reports if both arguments must not be used together.
func (a Argument) collides(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.repeatable && other.repeatable {
		return a.value == other.value
	}

	return true
}

// BuildArgumentStrings compiles the [Argument]s into a slice of strings that
// can be used with [exec.Command].
//
// It returns an error wrapping [ErrArgumentCollision] if any argument
// collides with one before it.
func BuildArgumentStrings(args []Argument) ([]string, error) {
	strs := make([]string, 0, 2*len(args))

	for idx, arg := range args {
		if i := slices.IndexFunc(args[:idx], arg.collides); i != -1 {
			return nil, fmt.Errorf("%w: %s, %s",
				ErrArgumentCollision, args[i], arg)
		}

		strs = append(strs, "-"+arg.name)

		if arg.value != "" {
			strs = append(strs, arg.value)
		}
	}

	return strs, nil
}
