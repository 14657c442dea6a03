// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GoGit fetches with the pure-Go git implementation.
type GoGit struct{}

// NewGoGit creates a go-git backed Fetcher.
func NewGoGit() *GoGit {
	return &GoGit{}
}

// FetchFull performs a depth-1 clone with a checked-out worktree.
func (g *GoGit) FetchFull(ctx context.Context, src Source, dest string) error {
	if err := prepareDest(dest); err != nil {
		return &FetchError{Op: OpFull, URL: src.URL, Ref: src.Ref, Err: err}
	}
	if _, err := g.clone(ctx, src, dest, false); err != nil {
		return &FetchError{Op: OpFull, URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}

// FetchSparse clones depth 1 without checkout, then checks out only the
// given directories.
func (g *GoGit) FetchSparse(ctx context.Context, src Source, dest string, paths []string) error {
	if err := prepareDest(dest); err != nil {
		return &FetchError{Op: OpSparse, URL: src.URL, Ref: src.Ref, Err: err}
	}

	repo, err := g.clone(ctx, src, dest, true)
	if err != nil {
		return &FetchError{Op: OpSparse, URL: src.URL, Ref: src.Ref, Err: err}
	}

	if err := sparseCheckout(repo, paths); err != nil {
		return &FetchError{Op: OpSparse, URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}

// clone tries the ref as a branch first and then as a tag, removing partial
// clones between attempts.
func (g *GoGit) clone(ctx context.Context, src Source, dest string, noCheckout bool) (*git.Repository, error) {
	opts := &git.CloneOptions{
		URL:          src.URL,
		Auth:         discoverAuth(src.URL),
		Depth:        1,
		SingleBranch: true,
		NoCheckout:   noCheckout,
		Tags:         git.NoTags,
	}

	if src.Ref == "" {
		return git.PlainCloneContext(ctx, dest, false, opts)
	}

	var errs []error
	for _, ref := range []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(src.Ref),
		plumbing.NewTagReferenceName(src.Ref),
	} {
		opts.ReferenceName = ref
		repo, err := git.PlainCloneContext(ctx, dest, false, opts)
		if err == nil {
			return repo, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", ref, err))
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			errs = append(errs, rmErr)
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}

func sparseCheckout(repo *git.Repository, paths []string) error {
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	opts := &git.CheckoutOptions{
		SparseCheckoutDirectories: paths,
		Force:                     true,
	}
	if head.Name().IsBranch() {
		opts.Branch = head.Name()
	} else {
		opts.Hash = head.Hash()
	}

	if err := wt.Checkout(opts); err != nil {
		return fmt.Errorf("sparse checkout failed: %w", err)
	}
	return nil
}
