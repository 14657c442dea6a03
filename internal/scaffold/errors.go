// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"fmt"
)

const (
	PhasePrecondition Phase = "precondition"
	PhaseFetch        Phase = "fetch"
	PhaseCreate       Phase = "create"
	PhaseTemplate     Phase = "template"
	PhaseCopy         Phase = "copy"
	PhaseGenerate     Phase = "generate"
	PhaseCustomize    Phase = "customize"
	PhaseCleanup      Phase = "cleanup"
	PhaseConfig       Phase = "config"
)

var (
	// ErrTargetExists is returned when the project directory already exists.
	ErrTargetExists = errors.New("target directory already exists")
	// ErrInvalidAppName is the sentinel error wrapped by InvalidAppNameError.
	ErrInvalidAppName = errors.New("invalid app name")
	// ErrInvalidSource is returned when a template or modules URL is missing.
	ErrInvalidSource = errors.New("template and modules sources are required")
)

type (
	// Phase names a step of a scaffold run.
	Phase string

	// TargetExistsError reports the pre-existing path.
	TargetExistsError struct {
		Path string
	}

	// InvalidAppNameError is returned when an app name cannot be used as a
	// directory name.
	InvalidAppNameError struct {
		Name   string
		Reason string
	}

	// InvalidSourceError reports which source URL is missing.
	InvalidSourceError struct {
		Template string
		Modules  string
	}

	// PhaseError reports a failure inside a phase after preconditions held.
	PhaseError struct {
		Phase  Phase
		Target string
		// Partial is true when the target directory was created before the
		// failure and is still on disk.
		Partial bool
		Err     error
	}
)

// String returns the phase name.
func (p Phase) String() string { return string(p) }

// Error implements the error interface for TargetExistsError.
func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("directory %s already exists", e.Path)
}

// Unwrap returns ErrTargetExists for errors.Is() compatibility.
func (e *TargetExistsError) Unwrap() error { return ErrTargetExists }

// Error implements the error interface for InvalidAppNameError.
func (e *InvalidAppNameError) Error() string {
	return fmt.Sprintf("invalid app name %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidAppName for errors.Is() compatibility.
func (e *InvalidAppNameError) Unwrap() error { return ErrInvalidAppName }

// Error implements the error interface for InvalidSourceError.
func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("template url %q and modules url %q must both be set", e.Template, e.Modules)
}

// Unwrap returns ErrInvalidSource for errors.Is() compatibility.
func (e *InvalidSourceError) Unwrap() error { return ErrInvalidSource }

// Error implements the error interface for PhaseError.
func (e *PhaseError) Error() string {
	msg := fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
	if e.Partial {
		msg += fmt.Sprintf(" (partially created project left at %s)", e.Target)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *PhaseError) Unwrap() error { return e.Err }
