// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

type (
	// Option represents a selectable option with a display title and value.
	Option[T comparable] struct {
		// Title is the display text for the option.
		Title string
		// Value is the underlying value.
		Value T
		// Selected marks the option as pre-selected.
		Selected bool
	}

	// MultiChooseOptions configures the MultiChoose component.
	MultiChooseOptions[T comparable] struct {
		// Title is the title/prompt displayed above the options.
		Title string
		// Description provides additional context below the title.
		Description string
		// Options is the list of options to choose from.
		Options []Option[T]
		// Min is the minimum number of selections (0 for none).
		Min int
		// Limit is the maximum number of selections (0 for no limit).
		Limit int
		// Height limits the number of visible options (0 for auto).
		Height int
		// Config holds common TUI configuration.
		Config Config
	}
)

// MultiChoose prompts the user to select multiple options from a list.
// The result keeps the order of opts.Options.
func MultiChoose[T comparable](ctx context.Context, opts MultiChooseOptions[T]) ([]T, error) {
	var result []T

	sel := huh.NewMultiSelect[T]().
		Title(opts.Title).
		Description(opts.Description).
		Options(huhOptions(opts.Options)...).
		Value(&result)

	if opts.Min > 0 {
		sel = sel.Validate(minSelected[T](opts.Min))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	if err := runForm(ctx, newForm(opts.Config, sel)); err != nil {
		return nil, err
	}
	return inOptionOrder(opts.Options, result), nil
}

func huhOptions[T comparable](opts []Option[T]) []huh.Option[T] {
	out := make([]huh.Option[T], len(opts))
	for i, opt := range opts {
		o := huh.NewOption(opt.Title, opt.Value)
		if opt.Selected {
			o = o.Selected(true)
		}
		out[i] = o
	}
	return out
}

func minSelected[T any](n int) func([]T) error {
	return func(v []T) error {
		if len(v) < n {
			if n == 1 {
				return fmt.Errorf("select at least one option")
			}
			return fmt.Errorf("select at least %d options", n)
		}
		return nil
	}
}

// inOptionOrder reorders picked to follow the declared option order.
func inOptionOrder[T comparable](opts []Option[T], picked []T) []T {
	set := make(map[T]struct{}, len(picked))
	for _, v := range picked {
		set[v] = struct{}{}
	}
	out := make([]T, 0, len(picked))
	for _, opt := range opts {
		if _, ok := set[opt.Value]; ok {
			out = append(out, opt.Value)
			delete(set, opt.Value)
		}
	}
	return out
}
