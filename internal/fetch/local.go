// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"create-hedera-agent/internal/fsutil"
)

// Local "fetches" from a directory on disk. The ref is ignored.
type Local struct{}

// NewLocal creates a directory-copy Fetcher.
func NewLocal() *Local {
	return &Local{}
}

// FetchFull copies the whole source directory, .git included, so the caller
// strips it the same way it would for a clone.
func (l *Local) FetchFull(ctx context.Context, src Source, dest string) error {
	if err := l.fetchFull(ctx, src, dest); err != nil {
		return &FetchError{Op: OpFull, URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}

// FetchSparse copies only the listed path prefixes. Missing prefixes are
// skipped.
func (l *Local) FetchSparse(ctx context.Context, src Source, dest string, paths []string) error {
	if err := l.fetchSparse(ctx, src, dest, paths); err != nil {
		return &FetchError{Op: OpSparse, URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}

func (l *Local) fetchFull(ctx context.Context, src Source, dest string) error {
	root, err := sourceRoot(src)
	if err != nil {
		return err
	}
	if err := prepareDest(dest); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	return fsutil.CopyTree(root, dest)
}

func (l *Local) fetchSparse(ctx context.Context, src Source, dest string, paths []string) error {
	root, err := sourceRoot(src)
	if err != nil {
		return err
	}
	if err := prepareDest(dest); err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := filepath.Clean(filepath.FromSlash(p))
		if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("sparse path %q escapes the repository", p)
		}

		from := filepath.Join(root, rel)
		if _, err := os.Lstat(from); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return err
		}

		to := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return err
		}
		if err := fsutil.CopyTree(from, to); err != nil {
			return err
		}
	}
	return nil
}

func sourceRoot(src Source) (string, error) {
	root := localPath(src.URL)
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}
	return root, nil
}
