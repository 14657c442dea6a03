// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"create-hedera-agent/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestLocal_FetchFull(t *testing.T) {
	t.Parallel()

	src := testutil.TemplateTree(t)
	dest := filepath.Join(t.TempDir(), "template")

	if err := NewLocal().FetchFull(context.Background(), Source{URL: src}, dest); err != nil {
		t.Fatalf("FetchFull: %v", err)
	}

	if diff := cmp.Diff(testutil.SnapshotTree(t, src), testutil.SnapshotTree(t, dest)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLocal_FetchFullFileURL(t *testing.T) {
	t.Parallel()

	src := testutil.TemplateTree(t)
	dest := filepath.Join(t.TempDir(), "template")

	if err := NewLocal().FetchFull(context.Background(), Source{URL: "file://" + src}, dest); err != nil {
		t.Fatalf("FetchFull: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "package.json")); err != nil {
		t.Errorf("package.json not fetched: %v", err)
	}
}

func TestLocal_FetchSparse(t *testing.T) {
	t.Parallel()

	src := testutil.ModulesTree(t, "hts", "hcs", "ham")
	dest := filepath.Join(t.TempDir(), "modules")
	paths := []string{
		testutil.ModulesSubdir + "/hts",
		testutil.ModulesSubdir + "/hscs", // absent upstream
		testutil.ModulesSubdir + "/hcs",
	}

	if err := NewLocal().FetchSparse(context.Background(), Source{URL: src}, dest, paths); err != nil {
		t.Fatalf("FetchSparse: %v", err)
	}

	want := map[string]string{
		"tools/hts/index.ts":      "export const tool = \"hts\";\n",
		"tools/hts/lib/client.ts": "export {};\n",
		"tools/hcs/index.ts":      "export const tool = \"hcs\";\n",
		"tools/hcs/lib/client.ts": "export {};\n",
	}
	if diff := cmp.Diff(want, testutil.SnapshotTree(t, dest)); diff != "" {
		t.Errorf("sparse tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLocal_FetchSparseRejectsEscapingPath(t *testing.T) {
	t.Parallel()

	src := testutil.ModulesTree(t, "hts")
	dest := filepath.Join(t.TempDir(), "modules")

	err := NewLocal().FetchSparse(context.Background(), Source{URL: src}, dest, []string{"../outside"})
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}

func TestLocal_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T) (Source, string)
		op    string
	}{
		{
			name: "missing source",
			setup: func(t *testing.T) (Source, string) {
				return Source{URL: filepath.Join(t.TempDir(), "nope")}, filepath.Join(t.TempDir(), "out")
			},
			op: OpFull,
		},
		{
			name: "non-empty destination",
			setup: func(t *testing.T) (Source, string) {
				dest := t.TempDir()
				testutil.WriteTree(t, dest, map[string]string{"stale.txt": "x"})
				return Source{URL: testutil.TemplateTree(t)}, dest
			},
			op: OpFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, dest := tt.setup(t)
			err := NewLocal().FetchFull(context.Background(), src, dest)

			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FetchError", err)
			}
			if fe.Op != tt.op || fe.URL != src.URL {
				t.Errorf("FetchError = {Op:%q URL:%q}, want {Op:%q URL:%q}", fe.Op, fe.URL, tt.op, src.URL)
			}
		})
	}
}

func TestLocal_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLocal().FetchFull(ctx, Source{URL: testutil.TemplateTree(t)}, filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
