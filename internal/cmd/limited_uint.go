// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrValueOutOfRange is returned if a flag value is not within its bounds.
var ErrValueOutOfRange = errors.New("value is outside of range")

// LimitedUintValue is a flag value that must be within Lower and Upper. Zero
// bounds are not checked.
type LimitedUintValue struct {
	Value        *uint64
	Lower, Upper uint64
	Unit         string
}

// String implements pflag.Value.
func (u *LimitedUintValue) String() string {
	if u.Value == nil {
		return "0"
	}

	return strconv.FormatUint(*u.Value, 10)
}

// Set implements pflag.Value.
func (u *LimitedUintValue) Set(s string) error {
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if u.Lower > 0 && value < u.Lower {
		return fmt.Errorf("%d < %d: %w", value, u.Lower, ErrValueOutOfRange)
	}

	if u.Upper > 0 && value > u.Upper {
		return fmt.Errorf("%d > %d: %w", value, u.Upper, ErrValueOutOfRange)
	}

	*u.Value = value

	return nil
}

// Type implements pflag.Value.
func (u *LimitedUintValue) Type() string {
	if u.Unit != "" {
		return u.Unit
	}

	return "uint"
}
