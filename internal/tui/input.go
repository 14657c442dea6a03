// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrBlank is returned by NotBlank for empty or whitespace-only answers.
var ErrBlank = errors.New("a value is required")

// InputOptions configures the Input component.
type InputOptions struct {
	// Title is the title/prompt displayed above the input.
	Title string
	// Description provides additional context below the title.
	Description string
	// Placeholder is the placeholder text shown when input is empty.
	Placeholder string
	// Value is the initial value of the input.
	Value string
	// CharLimit limits the number of characters (0 for no limit).
	CharLimit int
	// Validate rejects answers; the prompt repeats until it returns nil.
	Validate func(string) error
	// Config holds common TUI configuration.
	Config Config
}

// Input prompts the user for a single line of text. The answer is trimmed.
func Input(ctx context.Context, opts InputOptions) (string, error) {
	result := opts.Value

	in := huh.NewInput().
		Title(opts.Title).
		Description(opts.Description).
		Placeholder(opts.Placeholder).
		Value(&result)

	if opts.CharLimit > 0 {
		in = in.CharLimit(opts.CharLimit)
	}
	if opts.Validate != nil {
		in = in.Validate(opts.Validate)
	}

	if err := runForm(ctx, newForm(opts.Config, in)); err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// NotBlank is an Input validator requiring a non-empty answer.
func NotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrBlank
	}
	return nil
}
