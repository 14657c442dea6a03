// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive prompts of the scaffolder.
//
// Input, MultiChoose and Confirm wrap charmbracelet/huh forms. Prompts fall
// back to huh's accessible mode (plain line-oriented questions) when stdin is
// not a terminal or ACCESSIBLE is set, and a cancelled form is reported as
// ErrCancelled.
package tui
