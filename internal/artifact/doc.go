// SPDX-License-Identifier: MPL-2.0

// Package artifact renders and writes the generated aggregation files of a
// scaffolded project: the tools index re-exporting every copied module and
// the composition entry point wiring the module factories together.
//
// Rendering is a pure function of the copied module list; writing always
// replaces the whole file so regenerating never duplicates lines.
package artifact
