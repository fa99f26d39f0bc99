// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vgadash/vgadash-ci/internal/initramfs"
	"github.com/vgadash/vgadash-ci/internal/kernel"
	"github.com/vgadash/vgadash-ci/internal/modbuild"
	"github.com/vgadash/vgadash-ci/internal/publish"
	"github.com/vgadash/vgadash-ci/internal/qemu"
	"github.com/vgadash/vgadash-ci/internal/snapshot"
)

// IO provides input and output for a [Run].
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result is what a [Run] produced. Fields of stages that did not run are
// empty.
type Result struct {
	Version    string
	Module     string
	Image      string
	Transcript string
	Verdict    snapshot.Verdict
}

// Run runs the stages required by the spec's command.
//
// For [CommandTest] the verification error is returned if the transcript does
// not match, and a [qemu.TimeoutError] if the guest did not terminate in
// time. In both cases the transcript has been written to [IO.Stdout] and the
// result has been published as configured.
func Run(ctx context.Context, spec *Spec, stdio IO) (Result, error) {
	var result Result

	err := spec.Validate()
	if err != nil {
		return result, err
	}

	artifacts, err := resolveKernel(spec.Kernel)
	if err != nil {
		return result, err
	}

	result.Version = artifacts.Version

	builder := modbuild.Builder{
		Dir:    spec.Module.Dir,
		Make:   spec.Module.Make,
		Stdout: stdio.Stdout,
		Stderr: stdio.Stderr,
	}

	result.Module, err = builder.Build(ctx, artifacts.Version)
	if err != nil {
		return result, fmt.Errorf("build module: %w", err)
	}

	if spec.Command == CommandBuild {
		fmt.Fprintf(stdio.Stdout, "Built module: %s\n", result.Module)
		return result, nil
	}

	result.Image = initramfs.ImagePath(spec.outDir(), artifacts.Version)

	err = initramfs.Assemble(ctx, initramfs.Spec{
		Output:      result.Image,
		Module:      result.Module,
		Marker:      spec.Initramfs.Marker,
		Interactive: spec.interactive(),
		Busybox:     spec.Initramfs.Busybox,
	})
	if err != nil {
		return result, fmt.Errorf("assemble initramfs: %w", err)
	}

	slog.Debug("Initramfs assembled", slog.String("path", result.Image))

	result.Transcript, err = boot(ctx, spec, artifacts.Image, result.Image, stdio)

	if spec.Publish.KeepTranscript && result.Transcript != "" {
		saveTranscript(TranscriptPath(spec.outDir(), artifacts.Version), result.Transcript)
	}

	if spec.Command == CommandDemo {
		return result, err
	}

	// The guest's console is the most useful diagnostic on any outcome.
	fmt.Fprint(stdio.Stdout, result.Transcript)

	var timeoutErr *qemu.TimeoutError

	switch {
	case errors.As(err, &timeoutErr):
		result.Verdict = snapshot.Verdict{
			Diagnostic: timeoutErr.Error(),
			Metadata:   spec.metadata(artifacts.Version),
		}
	case err != nil:
		return result, err
	default:
		result.Verdict, err = snapshot.Verify(
			result.Transcript,
			spec.Initramfs.Marker,
			spec.metadata(artifacts.Version),
		)
	}

	record := publish.NewRecord(result.Verdict, err)
	record.Snapshot, _ = snapshot.Extract(result.Transcript)

	reportErr := report(ctx, spec.Publish, record)

	return result, errors.Join(err, reportErr)
}

func resolveKernel(spec Kernel) (kernel.Artifacts, error) {
	version, err := kernel.Resolve(spec.Version, os.DirFS(spec.Layout.BootDir))
	if err != nil {
		return kernel.Artifacts{}, fmt.Errorf("resolve kernel version: %w", err)
	}

	slog.Debug("Kernel version selected", slog.String("version", version))

	artifacts, err := kernel.Locate(version, spec.Layout)
	if err != nil {
		return kernel.Artifacts{}, fmt.Errorf("locate kernel: %w", err)
	}

	return artifacts, nil
}

func boot(
	ctx context.Context,
	spec *Spec,
	kernelImage string,
	initramfsImage string,
	stdio IO,
) (string, error) {
	qemuSpec := spec.Qemu.CommandSpec
	qemuSpec.Kernel = kernelImage
	qemuSpec.Initramfs = initramfsImage
	qemuSpec.Display = spec.display()
	qemuSpec.AddDefaults()

	runner := qemu.Runner{Timeout: spec.Qemu.Timeout}

	// A demo is watched and typed into live. A test is printed once done.
	if spec.Command == CommandDemo {
		runner.Stdin = stdio.Stdin
		runner.Live = stdio.Stdout
	}

	slog.Debug("Booting guest",
		slog.String("accel", string(qemuSpec.Accel)),
		slog.String("display", string(qemuSpec.Display)),
		slog.Duration("timeout", runner.Timeout))

	transcript, err := runner.Run(ctx, qemuSpec)
	if err != nil {
		return transcript, fmt.Errorf("boot guest: %w", err)
	}

	return transcript, nil
}

// report writes the configured report and publishes the record. Only a failed
// report is returned. Publishing is best effort.
func report(ctx context.Context, spec Publish, record publish.Record) error {
	var err error

	if spec.ReportPath != "" {
		err = publish.WriteReport(spec.ReportPath, record)
		if err != nil {
			err = fmt.Errorf("write report: %w", err)
		}
	}

	if spec.AMQPURL != "" {
		publisher := publish.Publisher{
			URL:  spec.AMQPURL,
			Dial: spec.Dial,
		}

		pubErr := publisher.Publish(ctx, record)
		if pubErr != nil {
			slog.Warn("Failed to publish result",
				slog.String("run_id", record.RunID),
				slog.Any("error", pubErr))
		}
	}

	return err
}

func saveTranscript(path, transcript string) {
	err := os.WriteFile(path, []byte(transcript), 0o644)
	if err != nil {
		slog.Error("Failed to save transcript",
			slog.String("path", path),
			slog.Any("error", err))

		return
	}

	slog.Info("Transcript saved", slog.String("path", path))
}

func (s *Spec) metadata(version string) snapshot.Metadata {
	return snapshot.Metadata{
		Version: version,
		Marker:  s.Initramfs.Marker,
		Command: string(s.Command),
	}
}
