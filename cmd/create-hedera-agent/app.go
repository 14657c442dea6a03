// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"create-hedera-agent/internal/config"
	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/postinstall"
	"create-hedera-agent/internal/provision"
	"create-hedera-agent/internal/service"
	"create-hedera-agent/internal/tui"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reaches
	// its collaborators only through it.
	App struct {
		Config         ConfigProvider
		NewFetcher     FetcherFactory
		NewProvisioner ProvisionerFactory
		Prompter       Prompter
		Installer      Installer
		// Interactive reports whether prompts may be shown.
		Interactive func() bool
		// TempDir is the parent of transient fetch directories.
		TempDir string
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer

		// verbose is set once the configuration has been resolved.
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config         ConfigProvider
		NewFetcher     FetcherFactory
		NewProvisioner ProvisionerFactory
		Prompter       Prompter
		Installer      Installer
		Interactive    func() bool
		TempDir        string
		Stdin          io.Reader
		Stdout         io.Writer
		Stderr         io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// FetcherFactory builds the fetcher for a configured backend.
	FetcherFactory func(backend fetch.Backend) (fetch.Fetcher, error)

	// ProvisionerFactory builds the account provisioner once per run. The
	// returned close function releases its client.
	ProvisionerFactory func(cfg *config.Config) (provision.Provisioner, func() error)

	// Prompter asks for the values that were not given as flags.
	Prompter interface {
		AppName(ctx context.Context) (string, error)
		Services(ctx context.Context, entries []service.Entry) ([]service.ID, error)
		ConfirmProvision(ctx context.Context, network provision.Network) (bool, error)
	}

	// Installer runs the post-scaffold install command.
	Installer interface {
		Run(ctx context.Context, dir, command string) error
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:         deps.Config,
		NewFetcher:     deps.NewFetcher,
		NewProvisioner: deps.NewProvisioner,
		Prompter:       deps.Prompter,
		Installer:      deps.Installer,
		Interactive:    deps.Interactive,
		TempDir:        deps.TempDir,
		stdin:          deps.Stdin,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
	}

	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewFetcher == nil {
		app.NewFetcher = fetch.New
	}
	if app.NewProvisioner == nil {
		app.NewProvisioner = newHederaProvisioner
	}
	if app.Interactive == nil {
		app.Interactive = func() bool { return isTerminal(app.stdin) }
	}
	if app.Installer == nil {
		app.Installer = &postinstall.Runner{Stdout: app.stdout, Stderr: app.stderr}
	}

	return app
}

// prompter returns the injected Prompter or a huh-backed one using cfg's UI
// settings.
func (a *App) prompter(cfg *config.Config) Prompter {
	if a.Prompter != nil {
		return a.Prompter
	}
	tcfg := tui.DefaultConfig()
	tcfg.Accessible = tcfg.Accessible || cfg.UI.Accessible || !isTerminal(a.stdin)
	tcfg.Input = a.stdin
	tcfg.Output = a.stdout
	if tcfg.Accessible {
		tcfg.Output = a.stderr
	}
	return &tuiPrompter{cfg: tcfg}
}

// isTerminal reports whether r is a file connected to a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && tui.IsTerminal(f)
}

// logger returns a component logger writing to stderr. Warnings are shown by
// default; verbose mode adds debug output.
func (a *App) logger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: "create-hedera-agent",
		Level:  level,
	})
}

// newHederaProvisioner builds the Hedera SDK client from operator
// credentials. Missing or invalid credentials produce a provisioner that
// fails, so the run degrades to blank account fields.
func newHederaProvisioner(cfg *config.Config) (provision.Provisioner, func() error) {
	noop := func() error { return nil }
	if !cfg.Provisioning.HasOperator() {
		return failingProvisioner(provision.ErrMissingOperator), noop
	}
	h, err := provision.NewHedera(cfg.ProvisionOptions())
	if err != nil {
		return failingProvisioner(err), noop
	}
	return h, h.Close
}

func failingProvisioner(err error) provision.Provisioner {
	return provision.Func(func(context.Context) (*provision.Credentials, error) {
		return nil, err
	})
}
