// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"testing"

	"create-hedera-agent/internal/service"

	"github.com/google/go-cmp/cmp"
)

func TestRewritePackageJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		set  map[string]string
		want string
	}{
		{
			name: "replaces in place",
			in:   `{"version":"1.0.0","name":"starter","description":"x","dependencies":{"a":"^1"}}`,
			set:  map[string]string{"name": "my-app", "description": "AI"},
			want: `{
  "version": "1.0.0",
  "name": "my-app",
  "description": "AI",
  "dependencies": {
    "a": "^1"
  }
}
`,
		},
		{
			name: "appends missing keys sorted",
			in:   `{"private":true}`,
			set:  map[string]string{"name": "n", "description": "d"},
			want: `{
  "private": true,
  "description": "d",
  "name": "n"
}
`,
		},
		{
			name: "escapes values",
			in:   `{"name":"x"}`,
			set:  map[string]string{"name": `a "quoted" <name>`},
			want: "{\n  \"name\": \"a \\\"quoted\\\" \\u003cname\\u003e\"\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := rewritePackageJSON([]byte(tt.in), tt.set)
			if err != nil {
				t.Fatalf("rewritePackageJSON: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewritePackageJSON_RejectsNonObject(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`[]`, `"name"`, `{"name":`, ``} {
		if _, err := rewritePackageJSON([]byte(in), map[string]string{"name": "x"}); err == nil {
			t.Errorf("rewritePackageJSON(%q) succeeded, want error", in)
		}
	}
}

func TestPackageName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"My Agent":         "my-agent",
		"  spaced   out  ": "spaced-out",
		"tabs\tand\nlines": "tabs-and-lines",
		"already-fine":     "already-fine",
	}
	for in, want := range tests {
		if got := PackageName(in); got != want {
			t.Errorf("PackageName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPackageDescription(t *testing.T) {
	t.Parallel()

	got := PackageDescription([]service.ID{service.Hts, service.Hcs})
	if want := "AI Agent with Hedera integration - Hts, Hcs"; got != want {
		t.Errorf("PackageDescription = %q, want %q", got, want)
	}
}

func TestRequest_SparsePaths(t *testing.T) {
	t.Parallel()

	sel, err := service.NewSelection(service.Hscs, service.Ham)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		modulesPath string
		want        []string
	}{
		{"", []string{"tools/hscs", "tools/ham"}},
		{"/src/tools/", []string{"src/tools/hscs", "src/tools/ham"}},
	}
	for _, tt := range tests {
		r := Request{Services: sel, ModulesPath: tt.modulesPath}
		if diff := cmp.Diff(tt.want, r.sparsePaths()); diff != "" {
			t.Errorf("modulesPath %q: mismatch (-want +got):\n%s", tt.modulesPath, diff)
		}
	}
}
