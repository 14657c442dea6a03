// SPDX-License-Identifier: MPL-2.0

// Package platform holds cross-platform file naming rules.
package platform

import "strings"

// reservedNames are device names Windows refuses as file or directory names,
// with or without an extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name, ignoring case and any
// extension, is a Windows device name.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if idx := strings.IndexByte(upper, '.'); idx != -1 {
		upper = upper[:idx]
	}
	return reservedNames[upper]
}

// HasInvalidNameChars reports whether name contains a character that no
// supported filesystem accepts in a single path component.
func HasInvalidNameChars(name string) bool {
	return strings.ContainsAny(name, `<>:"|?*`) || strings.ContainsFunc(name, func(r rune) bool {
		return r < 0x20
	})
}
