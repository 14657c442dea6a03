// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/issue"
	"create-hedera-agent/internal/scaffold"
	"create-hedera-agent/internal/service"

	"github.com/charmbracelet/fang"
)

func TestActionable(t *testing.T) {
	t.Parallel()

	fetchErr := &scaffold.PhaseError{
		Phase:  scaffold.PhaseFetch,
		Target: "/tmp/x",
		Err:    &fetch.FetchError{Op: fetch.OpFull, URL: "https://example.com/t.git", Err: errors.New("not found")},
	}

	tests := []struct {
		name           string
		err            error
		wantSuggestion string
		wantIssue      issue.Id
	}{
		{
			name:           "target exists",
			err:            &scaffold.TargetExistsError{Path: "/tmp/x"},
			wantSuggestion: "different app name",
			wantIssue:      issue.TargetExistsId,
		},
		{
			name:           "empty selection",
			err:            service.ErrEmptySelection,
			wantSuggestion: "--services",
			wantIssue:      issue.EmptySelectionId,
		},
		{
			name:           "fetch failure",
			err:            fetchErr,
			wantSuggestion: "GITHUB_TOKEN",
			wantIssue:      issue.FetchFailedId,
		},
		{
			name: "git missing",
			err: &scaffold.PhaseError{
				Phase: scaffold.PhaseFetch,
				Err:   &fetch.FetchError{Op: fetch.OpSparse, Err: fmt.Errorf("run git: %w", exec.ErrNotFound)},
			},
			wantSuggestion: "Install git",
			wantIssue:      issue.GitNotFoundId,
		},
		{
			name: "partial project",
			err: &scaffold.PhaseError{
				Phase:   scaffold.PhaseGenerate,
				Target:  "/tmp/y",
				Partial: true,
				Err:     errors.New("disk full"),
			},
			wantSuggestion: "Remove /tmp/y",
			wantIssue:      issue.PartialProjectId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := actionable(tt.err)
			ae, ok := issue.Find(got)
			if !ok {
				t.Fatalf("actionable() = %T, want *issue.ActionableError", got)
			}
			if !strings.Contains(strings.Join(ae.Suggestions, "\n"), tt.wantSuggestion) {
				t.Errorf("suggestions %q do not mention %q", ae.Suggestions, tt.wantSuggestion)
			}
			if id, ok := issueFor(got); !ok || id != tt.wantIssue {
				t.Errorf("issueFor() = %v, %v; want %v", id, ok, tt.wantIssue)
			}
		})
	}
}

func TestActionable_PassThrough(t *testing.T) {
	t.Parallel()

	if actionable(nil) != nil {
		t.Error("actionable(nil) != nil")
	}
	already := issue.NewErrorContext().WithOperation("load configuration").Wrap(errors.New("x")).BuildError()
	if got := actionable(already); got != already {
		t.Errorf("actionable() rewrapped an actionable error: %v", got)
	}
	if id, ok := issueFor(already); !ok || id != issue.ConfigLoadFailedId {
		t.Errorf("issueFor(config error) = %v, %v", id, ok)
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	app := NewApp(Dependencies{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	var buf bytes.Buffer
	err := &ExitError{Code: 1, Err: actionable(&scaffold.TargetExistsError{Path: "/tmp/x"})}

	app.handleError(&buf, fang.Styles{}, err)
	out := buf.String()
	if !strings.Contains(out, "already exists") || !strings.Contains(out, "--verbose") {
		t.Errorf("handleError() output:\n%s", out)
	}

	buf.Reset()
	app.handleError(&buf, fang.Styles{}, &ExitError{Code: 2})
	if buf.Len() != 0 {
		t.Errorf("bare exit errors should print nothing, got %q", buf.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	e := &ExitError{Code: 3, Err: inner}
	if e.Error() != "inner" || !errors.Is(e, inner) {
		t.Errorf("ExitError = %v", e)
	}
	if (&ExitError{Code: 4}).Error() != "exit status 4" {
		t.Errorf("bare ExitError message = %q", (&ExitError{Code: 4}).Error())
	}
}
