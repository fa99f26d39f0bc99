// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

// ModuleName is the file name of the kernel module in the guest's root.
const ModuleName = "vgadash.ko"

// Every optional step is suffixed with "|| true", so a missing debugfs path
// does not abort the script before the snapshot is printed. The command
// sequence and sentinels are matched by the snapshot verifier and must not
// change independently.
var initScript = template.Must(template.New("init").Parse(`#!/bin/sh
set -eu

mount -t proc proc /proc
mount -t sysfs sys /sys
mount -t devtmpfs dev /dev
mount -t debugfs none /sys/kernel/debug || true

echo "[init] inserting {{.Module}}..."
insmod /{{.Module}} || {
  echo "[init] insmod failed"
  dmesg | tail -n 80
  exec /bin/sh
}

echo "[init] mount debugfs + toggle dashboard..."
mount -t debugfs none /sys/kernel/debug 2>/dev/null || true

# Make sure dashboard is on and on logs page
echo logs > /sys/kernel/debug/vgadash/page || true
echo 1 > /sys/kernel/debug/vgadash/toggle || true

# Inject a known kernel log line (does not depend on journald)
echo "{{.Marker}}" > /dev/kmsg || true

# Re-render logs page so the marker shows up
echo logs > /sys/kernel/debug/vgadash/page || true
echo 1 > /sys/kernel/debug/vgadash/toggle || true
echo 1 > /sys/kernel/debug/vgadash/toggle || true
echo 1 > /sys/kernel/debug/vgadash/toggle || true

echo "{{.Begin}}" > /dev/ttyS0
cat /sys/kernel/debug/vgadash/snapshot > /dev/ttyS0 || true
echo "{{.End}}" > /dev/ttyS0

echo "[init] done"
{{if .Interactive}}exec /bin/cttyhack /bin/sh{{else}}poweroff -f{{end}}
`))

// ValidateMarker checks that the marker can be embedded in a double quoted
// shell string literally.
func ValidateMarker(marker string) error {
	if marker == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMarker)
	}

	if i := strings.IndexAny(marker, "\"\\$`\n\r\x00"); i >= 0 {
		return fmt.Errorf("%w: character %q not allowed", ErrInvalidMarker, marker[i])
	}

	return nil
}

// InitScript renders the guest's init script.
//
// The script mounts the pseudo file systems, loads the module, switches the
// dashboard to its logs page, writes the marker into the kernel log and
// prints the dashboard snapshot between sentinel lines on the serial console.
// If interactive is true it drops into a shell afterwards, otherwise it
// powers off the guest.
func InitScript(marker string, interactive bool) ([]byte, error) {
	err := ValidateMarker(marker)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = initScript.Execute(&buf, struct {
		Module      string
		Marker      string
		Begin       string
		End         string
		Interactive bool
	}{
		Module:      ModuleName,
		Marker:      marker,
		Begin:       snapshot.BeginSentinel,
		End:         snapshot.EndSentinel,
		Interactive: interactive,
	})
	if err != nil {
		return nil, fmt.Errorf("render init: %w", err)
	}

	return buf.Bytes(), nil
}
