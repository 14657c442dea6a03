// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"create-hedera-agent/internal/artifact"
	"create-hedera-agent/internal/copier"
	"create-hedera-agent/internal/envfile"
	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/fsutil"
	"create-hedera-agent/internal/provision"
	"create-hedera-agent/internal/service"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// GeneratorName is recorded in manifests and used for transient
	// directory names.
	GeneratorName = "create-hedera-agent"

	templateDirName = "template"
	modulesDirName  = "modules"
	gitDirName      = ".git"
)

type (
	// Materializer runs scaffold requests. The zero value is not usable;
	// Fetcher is required and the remaining fields have defaults.
	Materializer struct {
		Fetcher fetch.Fetcher
		Copier  *copier.Copier
		// Provisioner is consulted only for requests with Provision set. Nil
		// means provisioning is unavailable and yields a warning.
		Provisioner provision.Provisioner
		Logger      *log.Logger
		// TempDir is the parent of per-run fetch directories (default
		// os.TempDir()).
		TempDir string
		// Ext is the generated files' extension (default "ts").
		Ext    string
		Naming artifact.NamingRule
		Now    func() time.Time
		// NewRunID defaults to uuid.NewString.
		NewRunID func() string
	}

	// Result describes a completed run.
	Result struct {
		ProjectDir string
		RunID      string
		Outcomes   []copier.Outcome
		Copied     []service.ID
		Skipped    []service.ID
		// Credentials is set when an account was provisioned.
		Credentials *provision.Credentials
		Warnings    []string
	}

	// run carries the state of one Materialize call.
	run struct {
		m      *Materializer
		req    Request
		log    *log.Logger
		id     string
		target string
		work   string
		layout artifact.Layout
		res    *Result
		// created flips once the target directory exists.
		created bool
		cleaned bool
	}
)

// Materialize creates the project described by req. It returns a
// *TargetExistsError, an *InvalidAppNameError, an *InvalidSourceError or
// service.ErrEmptySelection before touching the filesystem, and a
// *PhaseError for any later failure.
func (m *Materializer) Materialize(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		m:      m,
		req:    req,
		log:    m.logger(),
		id:     m.runID(),
		target: req.Target(),
	}
	r.layout = artifact.Layout{ProjectDir: r.target, Ext: m.Ext}
	r.res = &Result{ProjectDir: r.target, RunID: r.id}

	if err := r.precondition(); err != nil {
		return nil, err
	}

	r.log.Debug("starting run", "run", r.id, "target", r.target, "services", req.Services.Strings())

	defer r.cleanup()

	steps := []struct {
		phase Phase
		fn    func(context.Context) error
	}{
		{PhaseFetch, r.fetch},
		{PhaseCreate, r.create},
		{PhaseTemplate, r.copyTemplate},
		{PhaseCopy, r.copyModules},
		{PhaseGenerate, r.generate},
		{PhaseCustomize, r.customize},
		{PhaseCleanup, func(context.Context) error { r.cleanup(); return nil }},
		{PhaseConfig, r.config},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.res, r.fail(step.phase, err)
		}
		r.log.Debug("phase", "name", step.phase)
		if err := step.fn(ctx); err != nil {
			return r.res, r.fail(step.phase, err)
		}
	}

	return r.res, nil
}

func (m *Materializer) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return log.New(io.Discard)
}

func (m *Materializer) runID() string {
	if m.NewRunID != nil {
		return m.NewRunID()
	}
	return uuid.NewString()
}

func (m *Materializer) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Materializer) copier() *copier.Copier {
	if m.Copier != nil {
		return m.Copier
	}
	return copier.New(copier.DefaultConcurrency)
}

func (m *Materializer) naming() artifact.NamingRule {
	if m.Naming != nil {
		return m.Naming
	}
	return artifact.DefaultNaming
}

func (r *run) fail(phase Phase, err error) error {
	return &PhaseError{Phase: phase, Target: r.target, Partial: r.created, Err: err}
}

func (r *run) warn(msg string, keyvals ...any) {
	r.log.Warn(msg, keyvals...)
	r.res.Warnings = append(r.res.Warnings, msg)
}

func (r *run) precondition() error {
	if r.m.Fetcher == nil {
		return errors.New("scaffold: no fetcher configured")
	}
	if _, err := os.Lstat(r.target); err == nil {
		return &TargetExistsError{Path: r.target}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", r.target, err)
	}
	return nil
}

func (r *run) fetch(ctx context.Context) error {
	root := r.m.TempDir
	if root == "" {
		root = os.TempDir()
	}
	r.work = filepath.Join(root, GeneratorName+"-"+r.id)
	if err := os.MkdirAll(r.work, 0o700); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	r.log.Info("fetching template", "url", r.req.Template.URL)
	if err := r.m.Fetcher.FetchFull(ctx, r.req.Template, filepath.Join(r.work, templateDirName)); err != nil {
		return err
	}

	r.log.Info("fetching modules", "url", r.req.Modules.URL, "paths", r.req.sparsePaths())
	return r.m.Fetcher.FetchSparse(ctx, r.req.Modules, filepath.Join(r.work, modulesDirName), r.req.sparsePaths())
}

func (r *run) create(context.Context) error {
	if r.req.ParentDir != "" {
		if err := os.MkdirAll(r.req.ParentDir, 0o755); err != nil {
			return err
		}
	}
	// Mkdir fails if another run created the target since the precondition.
	if err := os.Mkdir(r.target, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return &TargetExistsError{Path: r.target}
		}
		return err
	}
	r.created = true
	return nil
}

// copyTemplate copies every top-level template entry except .git.
func (r *run) copyTemplate(ctx context.Context) error {
	src := filepath.Join(r.work, templateDirName)
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.Name() == gitDirName {
			continue
		}
		if err := fsutil.CopyTree(filepath.Join(src, e.Name()), filepath.Join(r.target, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) copyModules(ctx context.Context) error {
	src := filepath.Join(r.work, modulesDirName, filepath.FromSlash(r.req.modulesPath()))
	outcomes, err := r.m.copier().CopySelected(ctx, src, r.layout.ToolsDir(), r.req.Services)
	if err != nil {
		return err
	}

	r.res.Outcomes = outcomes
	r.res.Copied = copier.Copied(outcomes)
	r.res.Skipped = copier.Skipped(outcomes)

	for _, id := range r.res.Skipped {
		r.warn(fmt.Sprintf("module %s not found in %s; skipped", id, r.req.Modules.URL), "service", id)
	}
	for _, id := range r.res.Copied {
		r.log.Info("copied module", "service", id)
	}
	return nil
}

func (r *run) generate(context.Context) error {
	return artifact.WriteAll(r.layout, r.res.Copied, r.m.naming())
}

func (r *run) customize(context.Context) error {
	if err := customizePackageJSON(r.target, r.req.AppName, r.res.Copied); err != nil {
		return err
	}
	if err := writeReadme(r.target, r.req.AppName, r.res.Copied, r.res.Skipped); err != nil {
		return err
	}
	return WriteManifest(r.target, r.manifest())
}

func (r *run) manifest() *Manifest {
	rel := func(p string) string {
		out, err := filepath.Rel(r.target, p)
		if err != nil {
			return p
		}
		return filepath.ToSlash(out)
	}
	return &Manifest{
		Generator: GeneratorName,
		RunID:     r.id,
		CreatedAt: r.m.now().UTC().Truncate(time.Second),
		App:       r.req.AppName,
		Package:   PackageName(r.req.AppName),
		Services:  r.req.Services.Strings(),
		Template:  SourceRecord{URL: r.req.Template.URL, Ref: r.req.Template.Ref},
		Modules: ModulesRecord{
			URL:     r.req.Modules.URL,
			Ref:     r.req.Modules.Ref,
			Path:    r.req.modulesPath(),
			Copied:  idStrings(r.res.Copied),
			Skipped: idStrings(r.res.Skipped),
		},
		Artifacts: ArtifactRecord{
			Index:       rel(r.layout.IndexPath()),
			Composition: rel(r.layout.CompositionPath()),
		},
	}
}

// cleanup removes the work directory once; failures are warnings.
func (r *run) cleanup() {
	if r.cleaned || r.work == "" {
		return
	}
	r.cleaned = true
	if err := os.RemoveAll(r.work); err != nil {
		r.warn(fmt.Sprintf("failed to remove temporary directory %s: %v", r.work, err), "phase", PhaseCleanup)
		return
	}
	r.log.Debug("removed work directory", "path", r.work)
}

func (r *run) config(ctx context.Context) error {
	res, err := envfile.WriteConfig(ctx, r.target, r.req.Provision, r.m.Provisioner, envfile.Options{
		Network:  r.req.Network,
		Services: r.res.Copied,
		Logger:   r.log,
	})
	if res != nil {
		r.res.Warnings = append(r.res.Warnings, res.Warnings...)
		r.res.Credentials = res.Credentials
	}
	return err
}

func idStrings(ids []service.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
