// SPDX-License-Identifier: MPL-2.0

// Package copier copies the selected service modules out of a fetched modules
// tree into the generated project.
package copier

import (
	"context"
	"fmt"
	"path/filepath"

	"create-hedera-agent/internal/fsutil"
	"create-hedera-agent/internal/service"

	"golang.org/x/sync/errgroup"
)

const (
	// StatusCopied means the module folder existed and was copied.
	StatusCopied Status = "copied"
	// StatusSkipped means the module folder was missing from the source.
	StatusSkipped Status = "skipped-missing"

	// DefaultConcurrency bounds the copy fan-out when no limit is given.
	DefaultConcurrency = 4
)

type (
	// Status is the per-module copy result.
	Status string

	// Outcome records what happened to one selected module.
	Outcome struct {
		ID     service.ID
		Status Status
		// Source is the folder that was looked up in the fetched tree.
		Source string
		// Dest is the folder written in the project; empty when skipped.
		Dest string
	}

	// Copier copies module folders from a source root into a destination root.
	Copier struct {
		// Concurrency bounds the number of modules copied at once.
		// Values below 1 fall back to DefaultConcurrency.
		Concurrency int
	}
)

// New creates a Copier with the given concurrency bound.
func New(concurrency int) *Copier {
	return &Copier{Concurrency: concurrency}
}

// CopySelected copies sourceRoot/<dir> to destRoot/<dir> for every selected
// service. A missing source folder yields a StatusSkipped outcome and never
// aborts the other copies. The returned outcomes follow selection order
// whatever the scheduling; all copies have finished when it returns.
func (c *Copier) CopySelected(ctx context.Context, sourceRoot, destRoot string, sel service.Selection) ([]Outcome, error) {
	ids := sel.IDs()
	outcomes := make([]Outcome, len(ids))

	limit := c.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			out, err := copyOne(gctx, sourceRoot, destRoot, id)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func copyOne(ctx context.Context, sourceRoot, destRoot string, id service.ID) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	src := filepath.Join(sourceRoot, id.Dir())
	out := Outcome{ID: id, Source: src}

	present, err := fsutil.DirExists(src)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to inspect module %s: %w", id, err)
	}
	if !present {
		out.Status = StatusSkipped
		return out, nil
	}

	dst := filepath.Join(destRoot, id.Dir())
	if err := fsutil.ReplaceTree(src, dst); err != nil {
		return Outcome{}, fmt.Errorf("failed to copy module %s: %w", id, err)
	}
	out.Status = StatusCopied
	out.Dest = dst
	return out, nil
}

// Copied returns the IDs of copied modules, preserving outcome order.
func Copied(outcomes []Outcome) []service.ID {
	var ids []service.ID
	for _, o := range outcomes {
		if o.Status == StatusCopied {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Skipped returns the IDs of modules whose source folder was missing.
func Skipped(outcomes []Outcome) []service.ID {
	var ids []service.ID
	for _, o := range outcomes {
		if o.Status == StatusSkipped {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
