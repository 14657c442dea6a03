// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"fmt"
	"os"

	"github.com/u-root/u-root/pkg/cp"
)

// CopyTree recursively copies src into dst. Symlinks are recreated rather than
// followed so a template cannot pull files from outside its own tree.
func CopyTree(src, dst string) error {
	if err := cp.NoFollowSymlinks.CopyTree(src, dst); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// ReplaceTree copies src to dst after removing whatever dst held before, so a
// repeated copy leaves exactly one up-to-date tree and no stale files.
func ReplaceTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dst, err)
	}
	return CopyTree(src, dst)
}
