// SPDX-License-Identifier: MPL-2.0

package copier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"create-hedera-agent/internal/service"
	"create-hedera-agent/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func mustSelection(t *testing.T, ids ...service.ID) service.Selection {
	t.Helper()
	sel, err := service.NewSelection(ids...)
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}
	return sel
}

func TestCopySelected_SkipsMissing(t *testing.T) {
	t.Parallel()

	src := filepath.Join(testutil.ModulesTree(t, "hts"), testutil.ModulesSubdir)
	dst := filepath.Join(t.TempDir(), "src", "modules", "tools")

	outcomes, err := New(2).CopySelected(context.Background(), src, dst, mustSelection(t, service.Hts, service.Hcs))
	if err != nil {
		t.Fatalf("CopySelected: %v", err)
	}

	if diff := cmp.Diff([]service.ID{service.Hts}, Copied(outcomes)); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]service.ID{service.Hcs}, Skipped(outcomes)); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dst, "hts", "lib", "client.ts")); err != nil {
		t.Errorf("hts module not copied recursively: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "hcs")); !os.IsNotExist(err) {
		t.Errorf("skipped module must not create a folder, stat err = %v", err)
	}
	if outcomes[1].Dest != "" {
		t.Errorf("skipped outcome Dest = %q, want empty", outcomes[1].Dest)
	}
}

func TestCopySelected_OrderIndependentOfConcurrency(t *testing.T) {
	t.Parallel()

	src := filepath.Join(testutil.ModulesTree(t, "ham", "hts", "hscs", "hcs"), testutil.ModulesSubdir)
	sel := mustSelection(t, service.Hcs, service.Ham, service.Hscs, service.Hts)

	var reference []Outcome
	for _, limit := range []int{1, 2, 4, 0} {
		dst := t.TempDir()
		outcomes, err := New(limit).CopySelected(context.Background(), src, dst, sel)
		if err != nil {
			t.Fatalf("limit %d: CopySelected: %v", limit, err)
		}
		// Normalise destination roots so runs can be compared.
		for i := range outcomes {
			outcomes[i].Dest = filepath.Base(outcomes[i].Dest)
		}
		if reference == nil {
			reference = outcomes
			continue
		}
		if diff := cmp.Diff(reference, outcomes); diff != "" {
			t.Errorf("limit %d: outcomes differ (-want +got):\n%s", limit, diff)
		}
	}

	want := []service.ID{service.Hcs, service.Ham, service.Hscs, service.Hts}
	if diff := cmp.Diff(want, Copied(reference)); diff != "" {
		t.Errorf("outcomes must follow selection order (-want +got):\n%s", diff)
	}
}

func TestCopySelected_IdempotentOverwrite(t *testing.T) {
	t.Parallel()

	src := filepath.Join(testutil.ModulesTree(t, "hts"), testutil.ModulesSubdir)
	dst := t.TempDir()
	testutil.WriteTree(t, dst, map[string]string{"hts/stale.ts": "old\n"})

	sel := mustSelection(t, service.Hts)
	for range 2 {
		if _, err := New(1).CopySelected(context.Background(), src, dst, sel); err != nil {
			t.Fatalf("CopySelected: %v", err)
		}
	}

	got := testutil.SnapshotTree(t, dst)
	want := map[string]string{
		"hts/index.ts":      "export const tool = \"hts\";\n",
		"hts/lib/client.ts": "export {};\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("destination mismatch (-want +got):\n%s", diff)
	}
}

func TestCopySelected_CancelledContext(t *testing.T) {
	t.Parallel()

	src := filepath.Join(testutil.ModulesTree(t, "hts"), testutil.ModulesSubdir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(1).CopySelected(ctx, src, t.TempDir(), mustSelection(t, service.Hts)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
