// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"bytes"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// openPTY returns the controller and the terminal end of a new
// pseudo-terminal.
func openPTY(t *testing.T) (*os.File, *os.File) {
	t.Helper()

	controller, err := os.OpenFile("/dev/ptmx", os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		t.Skipf("pseudo-terminals not available: %v", err)
	}

	t.Cleanup(func() { _ = controller.Close() })

	fd := int(controller.Fd())

	require.NoError(t, unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0))

	number, err := unix.IoctlGetInt(fd, unix.TIOCGPTN)
	require.NoError(t, err)

	tty, err := os.OpenFile("/dev/pts/"+strconv.Itoa(number), os.O_RDWR|unix.O_NOCTTY, 0)
	require.NoError(t, err)

	t.Cleanup(func() { _ = tty.Close() })

	return controller, tty
}

// The runner runs in a new session with the terminal as its controlling
// terminal, like the demo command run by a user at a terminal.
func TestRunner_Run_Terminal(t *testing.T) {
	controller, tty := openPTY(t)
	spec := fakeEmulator(t, `read -r line && echo "got $line"`)

	var stdout, stderr bytes.Buffer

	cmd := exec.Command(os.Args[0], "-test.run=^$")
	cmd.Env = append(os.Environ(), terminalRunnerEnv+"="+spec.Executable)
	cmd.Stdin = tty
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	require.NoError(t, cmd.Start())

	_, err := controller.Write([]byte("hello\n"))
	require.NoError(t, err)

	require.NoError(t, cmd.Wait(), stderr.String())
	assert.Equal(t, "got hello\n", stdout.String())
}
