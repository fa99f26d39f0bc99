// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package kernel

import (
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"
)

const imagePrefix = "vmlinuz-"

// versionRE filters out image names that do not look like a kernel release,
// like "vmlinuz-old" or "vmlinuz-rescue-<machine-id>".
var versionRE = regexp.MustCompile(`^\d+\.\d+\.\d+`)

// Resolve returns the kernel version to use.
//
// If override is not empty, it is returned as is. Otherwise the given boot
// directory is scanned for kernel images and the version of the newest one is
// returned. See [Latest] for the selection.
func Resolve(override string, bootFS fs.FS) (string, error) {
	if override != "" {
		return override, nil
	}

	// A missing directory yields no matches, not an error.
	names, err := fs.Glob(bootFS, imagePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("scan images: %w", err)
	}

	candidates := make([]string, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, strings.TrimPrefix(name, imagePrefix))
	}

	return Latest(candidates)
}

// Latest returns the highest version of the given candidates as ordered by
// [CompareVersions]. Candidates that do not start with a dotted numeric
// triple are ignored. It returns [ErrVersionNotFound] if no candidate is left.
func Latest(candidates []string) (string, error) {
	valid := slices.DeleteFunc(slices.Clone(candidates), func(c string) bool {
		return !versionRE.MatchString(c)
	})

	if len(valid) == 0 {
		return "", ErrVersionNotFound
	}

	return slices.MaxFunc(valid, CompareVersions), nil
}

// CompareVersions compares two version strings. The result is 0 if a == b,
// negative if a < b, and positive if a > b.
//
// Both strings are split into alternating runs of non-digits and digits.
// Digit runs are compared numerically, non-digit runs lexically. If one token
// sequence is a prefix of the other, the shorter one is less. So "5.10.0"
// is greater than "5.9.0", which plain string comparison gets wrong.
func CompareVersions(a, b string) int {
	tokensA, tokensB := tokenize(a), tokenize(b)

	for idx := range min(len(tokensA), len(tokensB)) {
		var res int
		// Tokens alternate starting with a non-digit run, so odd indexes
		// are always digit runs in both sequences.
		if idx%2 == 1 {
			res = compareNumeric(tokensA[idx], tokensB[idx])
		} else {
			res = strings.Compare(tokensA[idx], tokensB[idx])
		}

		if res != 0 {
			return res
		}
	}

	return len(tokensA) - len(tokensB)
}

// tokenize splits s into runs of non-digits and digits. The first token is
// always a non-digit run, which is empty if s starts with a digit.
func tokenize(s string) []string {
	tokens := []string{}
	inDigits := false
	start := 0

	for idx, r := range s {
		isDigit := '0' <= r && r <= '9'
		if isDigit == inDigits {
			continue
		}

		tokens = append(tokens, s[start:idx])
		start = idx
		inDigits = isDigit
	}

	return append(tokens, s[start:])
}

// compareNumeric compares two strings of decimal digits by value without
// converting them, so arbitrarily long runs can not overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		return len(a) - len(b)
	}

	return strings.Compare(a, b)
}
