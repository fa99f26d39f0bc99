// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultWaitDelay is how long output is drained after the emulator
// terminated or was killed.
const DefaultWaitDelay = 2 * time.Second

// timeoutLine is appended to the transcript of a killed guest.
const timeoutLine = "\n[TIMEOUT]\n"

// Runner runs QEMU commands with a wall-clock budget.
type Runner struct {
	// Timeout is the time budget of the guest. Zero means no limit.
	Timeout time.Duration

	// Stdin is connected to the serial console. Nil means no input.
	Stdin io.Reader

	// Live receives all output while the guest is running, in addition to
	// the transcript.
	Live io.Writer

	// WaitDelay bounds the time spent draining output after the emulator
	// terminated. If zero, [DefaultWaitDelay] is used.
	WaitDelay time.Duration
}

// Run runs the QEMU command described by spec and returns its transcript.
//
// The transcript contains everything the emulator wrote on stdout and stderr
// in the order received. A non-zero exit of the emulator is not an error, as
// the guest's outcome is judged by the transcript only.
//
// If the guest exceeds [Runner.Timeout], the emulator and all processes it
// started are killed, and a [TimeoutError] is returned. The returned
// transcript is never empty in this case. It ends with a "[TIMEOUT]" line.
//
// If [Runner.Stdin] is a terminal, the emulator stays in the caller's process
// group, so it may read from the terminal. Only the emulator itself is killed
// on timeout then.
func (r *Runner) Run(ctx context.Context, spec CommandSpec) (string, error) {
	args, err := spec.Args()
	if err != nil {
		return "", err
	}

	runCtx := ctx

	if r.Timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var (
		transcript transcript
		output     io.Writer = &transcript
	)

	if r.Live != nil {
		output = io.MultiWriter(&transcript, r.Live)
	}

	cmd := exec.CommandContext(runCtx, spec.Executable, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = output
	cmd.Stderr = output
	cmd.WaitDelay = r.waitDelay()

	if isTerminal(r.Stdin) {
		// A process outside the terminal's foreground process group is
		// stopped by SIGTTIN as soon as it reads, so it stays in ours.
		cmd.Cancel = func() error { return cmd.Process.Kill() }
	} else {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmd.Cancel = func() error { return killGroup(cmd.Process) }
	}

	slog.Debug("Running QEMU", slog.String("command", cmd.String()))

	err = cmd.Start()
	if err != nil {
		return "", fmt.Errorf("start qemu: %w", err)
	}

	err = cmd.Wait()

	switch {
	case err == nil:
	case ctx.Err() != nil:
		return transcript.String(), fmt.Errorf("run qemu: %w", ctx.Err())
	case runCtx.Err() != nil:
		// Anything still in flight has been drained by now.
		_, _ = transcript.Write([]byte(timeoutLine))

		return transcript.String(), &TimeoutError{
			Timeout:    r.Timeout,
			Transcript: transcript.String(),
		}
	case errors.Is(err, exec.ErrWaitDelay):
		slog.Warn("QEMU output not closed after exit, transcript may be incomplete",
			slog.Duration("wait_delay", cmd.WaitDelay))
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return transcript.String(), fmt.Errorf("wait qemu: %w", err)
		}

		slog.Debug("QEMU exited non-zero", slog.Int("exit_code", exitErr.ExitCode()))
	}

	return transcript.String(), nil
}

func (r *Runner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}

	return DefaultWaitDelay
}

func isTerminal(reader io.Reader) bool {
	file, ok := reader.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// killGroup kills the process group led by the given process. The emulator
// may have started helper processes that hold the output open.
func killGroup(process *os.Process) error {
	err := unix.Kill(-process.Pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return os.ErrProcessDone
	}

	return err //nolint:wrapcheck
}

// transcript is a buffer safe for concurrent use.
type transcript struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (t *transcript) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buf.Write(p) //nolint:wrapcheck
}

func (t *transcript) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buf.String()
}
