// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"fmt"
	"strings"
)

// GitCLI fetches by invoking the git binary, which supports blob-filtered
// partial clones that go-git lacks.
type GitCLI struct {
	runner Runner
	binary string
}

// NewGitCLI creates a git-binary Fetcher. A nil runner uses ExecRunner.
func NewGitCLI(runner Runner) *GitCLI {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &GitCLI{runner: runner, binary: "git"}
}

// FetchFull runs a depth-1 clone.
func (g *GitCLI) FetchFull(ctx context.Context, src Source, dest string) error {
	if err := prepareDest(dest); err != nil {
		return &FetchError{Op: OpFull, URL: src.URL, Ref: src.Ref, Err: err}
	}

	args := append([]string{"clone", "--depth", "1"}, refArgs(src)...)
	args = append(args, "--", src.URL, dest)
	if err := g.git(ctx, "", args...); err != nil {
		return &FetchError{Op: OpFull, URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}

// FetchSparse runs a blob-filtered depth-1 clone without checkout, restricts
// the worktree to paths in cone mode, then checks out.
func (g *GitCLI) FetchSparse(ctx context.Context, src Source, dest string, paths []string) error {
	if err := prepareDest(dest); err != nil {
		return &FetchError{Op: OpSparse, URL: src.URL, Ref: src.Ref, Err: err}
	}

	clone := append([]string{"clone", "--depth", "1", "--filter=blob:none", "--no-checkout"}, refArgs(src)...)
	clone = append(clone, "--", src.URL, dest)

	steps := [][]string{
		clone,
		{"-C", dest, "sparse-checkout", "init", "--cone"},
		append([]string{"-C", dest, "sparse-checkout", "set"}, paths...),
		{"-C", dest, "checkout"},
	}
	for _, args := range steps {
		if err := g.git(ctx, "", args...); err != nil {
			return &FetchError{Op: OpSparse, URL: src.URL, Ref: src.Ref, Err: err}
		}
	}
	return nil
}

func (g *GitCLI) git(ctx context.Context, dir string, args ...string) error {
	res, err := g.runner.Run(ctx, dir, g.binary, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", g.binary, args[0], err)
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return fmt.Errorf("%s %s exited with code %d: %s", g.binary, strings.Join(args, " "), res.ExitCode, msg)
	}
	return nil
}

func refArgs(src Source) []string {
	if src.Ref == "" {
		return nil
	}
	return []string{"--branch", src.Ref}
}
