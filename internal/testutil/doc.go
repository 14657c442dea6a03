// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the package tests: environment
// and directory helpers that fail the test on error, and builders for the
// template and modules source trees the scaffolder consumes.
package testutil
