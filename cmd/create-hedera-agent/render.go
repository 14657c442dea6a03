// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"create-hedera-agent/internal/config"
	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/issue"
	"create-hedera-agent/internal/scaffold"
	"create-hedera-agent/internal/service"

	"github.com/charmbracelet/fang"
)

// actionable converts a scaffold failure into an ActionableError carrying
// suggestions for the user. Errors that are already actionable pass through.
func actionable(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := issue.Find(err); ok {
		return err
	}

	ctx := issue.NewErrorContext().WithOperation("create project")

	var (
		existsErr *scaffold.TargetExistsError
		nameErr   *scaffold.InvalidAppNameError
		phaseErr  *scaffold.PhaseError
	)
	switch {
	case errors.As(err, &existsErr):
		ctx = ctx.WithResource(existsErr.Path).
			WithSuggestion("Choose a different app name").
			WithSuggestion("Use --dir to create the project in another parent directory")
		// The resource already names the directory.
		return ctx.Wrap(scaffold.ErrTargetExists).BuildError()
	case errors.As(err, &nameErr):
		ctx = ctx.WithSuggestion("Use a plain directory name such as my-agent")
	case errors.Is(err, service.ErrEmptySelection), errors.Is(err, service.ErrUnknownService):
		ctx = ctx.WithSuggestion(fmt.Sprintf("Pass --services with one or more of: %s", strings.Join(service.Names(), ", "))).
			WithSuggestion("Run 'create-hedera-agent services' to list the available services")
	case errors.As(err, &phaseErr):
		ctx = ctx.WithResource(phaseErr.Target)
		switch {
		case errors.Is(err, exec.ErrNotFound):
			ctx = ctx.WithSuggestion("Install git or set HEDERA_AGENT_FETCH_BACKEND=go-git")
		case errors.Is(err, fetch.ErrFetch):
			ctx = ctx.WithSuggestion("Check the repository URL and ref and your network connection").
				WithSuggestion("For private repositories export GITHUB_TOKEN, GITLAB_TOKEN or GIT_TOKEN")
		}
		if phaseErr.Partial {
			ctx = ctx.WithSuggestion(fmt.Sprintf("Remove %s and run the command again", phaseErr.Target))
		}
	}
	return ctx.Wrap(err).BuildError()
}

// issueFor returns the troubleshooting guide matching err, if any.
func issueFor(err error) (issue.Id, bool) {
	var phaseErr *scaffold.PhaseError
	switch {
	case errors.Is(err, scaffold.ErrTargetExists):
		return issue.TargetExistsId, true
	case errors.Is(err, scaffold.ErrInvalidAppName):
		return issue.InvalidAppNameId, true
	case errors.Is(err, service.ErrEmptySelection), errors.Is(err, service.ErrUnknownService):
		return issue.EmptySelectionId, true
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, true
	case errors.Is(err, exec.ErrNotFound):
		return issue.GitNotFoundId, true
	case errors.Is(err, fetch.ErrFetch):
		return issue.FetchFailedId, true
	case errors.As(err, &phaseErr) && phaseErr.Partial:
		return issue.PartialProjectId, true
	}
	if ae, ok := issue.Find(err); ok && ae.Operation == "load configuration" {
		return issue.ConfigLoadFailedId, true
	}
	return 0, false
}

// handleError renders errors on a terminal. Verbose mode adds the full error
// chain and the matching troubleshooting guide.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	if !a.verbose {
		if _, ok := issueFor(err); ok {
			fmt.Fprintln(w, SubtitleStyle.Render("Run with --verbose for troubleshooting steps."))
		}
		return
	}
	if id, ok := issueFor(err); ok {
		if guide, rerr := issue.Get(id).Render("dark"); rerr == nil {
			fmt.Fprint(w, guide)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	if ae, ok := issue.Find(err); ok {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
