// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// BackendAuto uses the local backend for existing directories and go-git
	// for everything else.
	BackendAuto Backend = "auto"
	// BackendGoGit clones in-process with go-git.
	BackendGoGit Backend = "go-git"
	// BackendGit shells out to the git binary.
	BackendGit Backend = "git"
	// BackendLocal copies from a local directory.
	BackendLocal Backend = "local"

	// OpFull is the FetchError operation for full clones.
	OpFull = "full fetch"
	// OpSparse is the FetchError operation for sparse clones.
	OpSparse = "sparse fetch"
)

var (
	// ErrInvalidBackend is the sentinel error wrapped by InvalidBackendError.
	ErrInvalidBackend = errors.New("invalid fetch backend")
	// ErrFetch is the sentinel error wrapped by FetchError.
	ErrFetch = errors.New("fetch failed")
)

type (
	// Backend selects a Fetcher implementation.
	Backend string

	// InvalidBackendError is returned when a Backend value is not recognized.
	InvalidBackendError struct {
		Value Backend
	}

	// Source names a repository snapshot.
	Source struct {
		// URL is a git URL (https, ssh, file) or a local directory.
		URL string
		// Ref is a branch or tag; empty means the default branch.
		Ref string
	}

	// Fetcher retrieves repository snapshots into dest, which must not exist
	// or be empty.
	Fetcher interface {
		// FetchFull makes a depth-1 copy of the whole repository.
		FetchFull(ctx context.Context, src Source, dest string) error
		// FetchSparse makes a depth-1 copy holding only the given path
		// prefixes. Prefixes that do not exist in the repository are legal.
		FetchSparse(ctx context.Context, src Source, dest string, paths []string) error
	}

	// FetchError reports a failed clone. Fetch failures are fatal for a run.
	FetchError struct {
		Op  string
		URL string
		Ref string
		Err error
	}

	// autoFetcher dispatches between the local and remote backends per call.
	autoFetcher struct {
		local  Fetcher
		remote Fetcher
	}
)

// New returns the Fetcher for backend.
func New(backend Backend) (Fetcher, error) {
	switch backend {
	case BackendAuto, "":
		return &autoFetcher{local: NewLocal(), remote: NewGoGit()}, nil
	case BackendGoGit:
		return NewGoGit(), nil
	case BackendGit:
		return NewGitCLI(nil), nil
	case BackendLocal:
		return NewLocal(), nil
	default:
		return nil, &InvalidBackendError{Value: backend}
	}
}

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// IsValid reports whether b names a known backend.
func (b Backend) IsValid() (bool, []error) {
	switch b {
	case BackendAuto, BackendGoGit, BackendGit, BackendLocal:
		return true, nil
	default:
		return false, []error{&InvalidBackendError{Value: b}}
	}
}

// Error implements the error interface for InvalidBackendError.
func (e *InvalidBackendError) Error() string {
	return fmt.Sprintf("invalid fetch backend %q (valid: auto, go-git, git, local)", e.Value)
}

// Unwrap returns ErrInvalidBackend for errors.Is() compatibility.
func (e *InvalidBackendError) Unwrap() error { return ErrInvalidBackend }

// Error implements the error interface for FetchError.
func (e *FetchError) Error() string {
	target := e.URL
	if e.Ref != "" {
		target += "@" + e.Ref
	}
	return fmt.Sprintf("%s of %s failed: %v", e.Op, target, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) match any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (f *autoFetcher) FetchFull(ctx context.Context, src Source, dest string) error {
	return f.pick(src).FetchFull(ctx, src, dest)
}

func (f *autoFetcher) FetchSparse(ctx context.Context, src Source, dest string, paths []string) error {
	return f.pick(src).FetchSparse(ctx, src, dest, paths)
}

func (f *autoFetcher) pick(src Source) Fetcher {
	if IsLocal(src.URL) {
		return f.local
	}
	return f.remote
}

// IsLocal reports whether url names an existing local directory, either as a
// plain path or a file:// URL.
func IsLocal(url string) bool {
	info, err := os.Stat(localPath(url))
	return err == nil && info.IsDir()
}

func localPath(url string) string {
	return strings.TrimPrefix(url, "file://")
}

// prepareDest fails when dest already holds files, so a fetch never mixes two
// snapshots.
func prepareDest(dest string) error {
	entries, err := os.ReadDir(dest)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("destination %s is not empty", dest)
	}
	return nil
}
