// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles user CUE files against embedded schemas and turns
// CUE errors into messages with JSON-path prefixes.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	m, err := cueutil.DecodeMap(schema, "#Config", data, "config.cue")
package cueutil
