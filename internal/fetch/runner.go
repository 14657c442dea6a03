// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

type (
	// CmdResult holds the outcome of a command that ran to completion.
	CmdResult struct {
		Stdout   string
		Stderr   string
		ExitCode int
	}

	// Runner runs external commands. Implementations must be safe to stub in
	// tests.
	Runner interface {
		// Run executes name with args in dir. A non-zero exit is reported
		// through CmdResult.ExitCode; the error is reserved for failures to
		// run at all (binary missing, context canceled).
		Run(ctx context.Context, dir, name string, args ...string) (CmdResult, error)
	}

	// ExecRunner is the os/exec backed Runner.
	ExecRunner struct{}
)

// Run executes the command and captures stdout and stderr.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CmdResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}
