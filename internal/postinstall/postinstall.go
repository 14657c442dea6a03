// SPDX-License-Identifier: MPL-2.0

// Package postinstall runs the optional dependency install command inside a
// freshly generated project, using an embedded POSIX shell interpreter so the
// command behaves the same on every platform.
package postinstall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommand installs the generated project's npm dependencies.
const DefaultCommand = "npm install"

var (
	// ErrEmptyCommand is returned for a blank install command.
	ErrEmptyCommand = errors.New("install command is empty")
	// ErrCommandFailed is the sentinel error wrapped by ExitError.
	ErrCommandFailed = errors.New("install command failed")
)

type (
	// Runner executes the install command.
	Runner struct {
		Stdout io.Writer
		Stderr io.Writer
		// Env is the command's environment as KEY=value pairs; nil inherits
		// the process environment.
		Env []string
	}

	// ExitError reports a non-zero exit status.
	ExitError struct {
		Command string
		Code    int
	}
)

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%q exited with status %d", e.Command, e.Code)
}

// Unwrap returns ErrCommandFailed for errors.Is() compatibility.
func (e *ExitError) Unwrap() error { return ErrCommandFailed }

// Run parses command as a shell script and runs it in dir.
func (r *Runner) Run(ctx context.Context, dir, command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "install")
	if err != nil {
		return fmt.Errorf("failed to parse install command: %w", err)
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, writerOrDiscard(r.Stdout), writerOrDiscard(r.Stderr)),
	)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Command: command, Code: int(status)}
		}
		return fmt.Errorf("install command failed: %w", err)
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
