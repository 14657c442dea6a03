// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"create-hedera-agent/internal/provision"
	"create-hedera-agent/internal/service"
	"create-hedera-agent/internal/tui"
)

// tuiPrompter asks questions with huh forms.
type tuiPrompter struct {
	cfg tui.Config
}

func (p *tuiPrompter) AppName(ctx context.Context) (string, error) {
	return tui.Input(ctx, tui.InputOptions{
		Title:       "Enter your app name:",
		Placeholder: "my-hedera-agent",
		Validate:    tui.NotBlank,
		Config:      p.cfg,
	})
}

func (p *tuiPrompter) Services(ctx context.Context, entries []service.Entry) ([]service.ID, error) {
	opts := make([]tui.Option[service.ID], len(entries))
	for i, e := range entries {
		opts[i] = tui.Option[service.ID]{Title: e.Title + " - " + e.Description, Value: e.ID}
	}
	return tui.MultiChoose(ctx, tui.MultiChooseOptions[service.ID]{
		Title:       "Select the Hedera services to include in your AI agent:",
		Description: "space to select, enter to submit",
		Options:     opts,
		Min:         1,
		Config:      p.cfg,
	})
}

func (p *tuiPrompter) ConfirmProvision(ctx context.Context, network provision.Network) (bool, error) {
	return tui.Confirm(ctx, tui.ConfirmOptions{
		Title:       fmt.Sprintf("Create a new %s account for this project?", network),
		Description: "Requires operator credentials (HEDERA_OPERATOR_ID, HEDERA_OPERATOR_KEY)",
		Config:      p.cfg,
	})
}
