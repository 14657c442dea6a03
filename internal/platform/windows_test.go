// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"CON", true},
		{"con", true},
		{"nul.txt", true},
		{"Lpt9", true},
		{"COM10", false},
		{"console", false},
		{"my-agent", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWindowsReservedName(tt.name); got != tt.want {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestHasInvalidNameChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"my agent", false},
		{"agent:v2", true},
		{"what?", true},
		{"tab\there", true},
		{"plain", false},
	}
	for _, tt := range tests {
		if got := HasInvalidNameChars(tt.name); got != tt.want {
			t.Errorf("HasInvalidNameChars(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
