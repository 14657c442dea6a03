// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"create-hedera-agent/internal/config"
	"create-hedera-agent/internal/copier"
	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/issue"
	"create-hedera-agent/internal/provision"
	"create-hedera-agent/internal/scaffold"
	"create-hedera-agent/internal/service"
	"create-hedera-agent/internal/tui"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"
)

// createOptions holds the root command's flags.
type createOptions struct {
	services     []string
	provision    bool
	provisionSet bool
	install      bool
	dir          string
	templateURL  string
	templateRef  string
	modulesURL   string
	modulesRef   string
	noInput      bool
}

func newCreateCommand(app *App, flags *rootFlags) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create-hedera-agent [app-name]",
		Short: "Create a new AI agent project with Hedera integration",
		Long: TitleStyle.Render("create-hedera-agent") + SubtitleStyle.Render(" - Hedera AI agent starter kit") + `

Creates a new project from the starter template, adds the selected Hedera
service modules, generates the tool index and composition entry point, and
writes a .env, optionally with a freshly provisioned account.

` + SubtitleStyle.Render("Examples:") + `
  create-hedera-agent                          Ask for everything interactively
  create-hedera-agent my-agent --services hts,hcs
  create-hedera-agent my-agent --services hts --provision --install
  create-hedera-agent services                 List the available services`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.provisionSet = cmd.Flags().Changed("provision")
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return app.runCreate(cmd.Context(), name, *opts, *flags)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&opts.services, "services", "s", nil, "services to include (comma separated: "+strings.ToLower(strings.Join(service.Names(), ","))+")")
	f.BoolVar(&opts.provision, "provision", false, "create a new Hedera account for the project's .env")
	f.BoolVar(&opts.install, "install", false, "install dependencies after scaffolding")
	f.StringVarP(&opts.dir, "dir", "C", "", "parent directory of the new project (default is the working directory)")
	f.StringVar(&opts.templateURL, "template-url", "", "starter template repository or local directory")
	f.StringVar(&opts.templateRef, "template-ref", "", "branch or tag of the starter template")
	f.StringVar(&opts.modulesURL, "modules-url", "", "modules repository or local directory")
	f.StringVar(&opts.modulesRef, "modules-ref", "", "branch or tag of the modules repository")
	f.BoolVar(&opts.noInput, "no-input", false, "never prompt; fail when a required value is missing")

	return cmd
}

// runCreate resolves every input, runs the scaffold and reports the result.
// A cancelled prompt ends the run successfully without writing anything.
func (a *App) runCreate(ctx context.Context, name string, opts createOptions, flags rootFlags) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.cfgFile})
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	a.verbose = flags.verbose || cfg.UI.Verbose
	logger := a.logger(a.verbose)

	req, err := a.resolveRequest(ctx, cfg, name, opts)
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(a.stdout, ErrorStyle.Render("Setup cancelled."))
		return nil
	}
	if err != nil {
		return &ExitError{Code: 1, Err: actionable(err)}
	}

	fetcher, err := a.NewFetcher(cfg.Fetch.Backend)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	var provisioner provision.Provisioner
	if req.Provision {
		p, closeFn := a.NewProvisioner(cfg)
		defer func() {
			if cerr := closeFn(); cerr != nil {
				logger.Debug("failed to close provisioning client", "err", cerr)
			}
		}()
		provisioner = p
	}

	m := &scaffold.Materializer{
		Fetcher:     fetcher,
		Copier:      copier.New(cfg.Fetch.Concurrency),
		Provisioner: provisioner,
		Logger:      logger.WithPrefix("scaffold"),
		TempDir:     a.TempDir,
		Ext:         cfg.Output.Extension.String(),
	}

	fmt.Fprintln(a.stdout, SubtitleStyle.Render("Creating "+req.AppName+"..."))
	res, err := m.Materialize(ctx, req)
	if err != nil {
		var phaseErr *scaffold.PhaseError
		if errors.As(err, &phaseErr) && phaseErr.Partial {
			fmt.Fprintln(a.stderr, WarningStyle.Render(fmt.Sprintf(
				"The project was partially created at %s. Remove it before retrying.", phaseErr.Target)))
		}
		return &ExitError{Code: 1, Err: actionable(err)}
	}

	installed := false
	if opts.install {
		installed = a.install(ctx, res.ProjectDir, cdTarget(req, res), cfg.Install.Command)
	}

	a.printSummary(a.stdout, req, res, installed)
	return nil
}

// resolveRequest fills the request from flags, prompting for missing values
// when interactive.
func (a *App) resolveRequest(ctx context.Context, cfg *config.Config, name string, opts createOptions) (scaffold.Request, error) {
	interactive := !opts.noInput && a.Interactive()
	var prompter Prompter
	if interactive {
		prompter = a.prompter(cfg)
		fmt.Fprintln(a.stdout, TitleStyle.Render("Welcome to the Hedera AI Agent Starter Kit!"))
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("This will create a new AI agent project with Hedera integration."))
		fmt.Fprintln(a.stdout)
	}

	if strings.TrimSpace(name) == "" {
		if prompter == nil {
			return scaffold.Request{}, issue.NewErrorContext().
				WithOperation("create project").
				WithSuggestion("Pass the app name as the first argument").
				Wrap(&scaffold.InvalidAppNameError{Name: name, Reason: "app name is required"}).
				BuildError()
		}
		answer, err := prompter.AppName(ctx)
		if err != nil {
			return scaffold.Request{}, err
		}
		name = answer
	}
	if err := scaffold.ValidateAppName(name); err != nil {
		return scaffold.Request{}, err
	}

	var sel service.Selection
	switch {
	case len(opts.services) > 0:
		parsed, err := service.ParseSelection(opts.services)
		if err != nil {
			return scaffold.Request{}, err
		}
		sel = parsed
	case prompter != nil:
		ids, err := prompter.Services(ctx, service.Catalogue())
		if err != nil {
			return scaffold.Request{}, err
		}
		// An empty answer counts as cancelling setup.
		if len(ids) == 0 {
			return scaffold.Request{}, tui.ErrCancelled
		}
		picked, err := service.NewSelection(ids...)
		if err != nil {
			return scaffold.Request{}, err
		}
		sel = picked
	default:
		return scaffold.Request{}, service.ErrEmptySelection
	}

	wantProvision := opts.provision
	if !opts.provisionSet && prompter != nil {
		answer, err := prompter.ConfirmProvision(ctx, cfg.Network)
		if err != nil {
			return scaffold.Request{}, err
		}
		wantProvision = answer
	}

	return scaffold.Request{
		AppName:     strings.TrimSpace(name),
		ParentDir:   opts.dir,
		Services:    sel,
		Template:    fetch.Source{URL: firstNonEmpty(opts.templateURL, cfg.Template.URL.String()), Ref: firstNonEmpty(opts.templateRef, cfg.Template.Ref)},
		Modules:     fetch.Source{URL: firstNonEmpty(opts.modulesURL, cfg.Modules.URL.String()), Ref: firstNonEmpty(opts.modulesRef, cfg.Modules.Ref)},
		ModulesPath: cfg.Modules.Path,
		Provision:   wantProvision,
		Network:     cfg.Network.String(),
	}, nil
}

// install runs the install command; failures are reported and the project
// stays in place.
func (a *App) install(ctx context.Context, dir, display, command string) bool {
	fmt.Fprintln(a.stdout, SubtitleStyle.Render("Installing dependencies ("+command+")..."))
	if err := a.Installer.Run(ctx, dir, command); err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+"dependency installation failed: "+err.Error())
		fmt.Fprintln(a.stderr, SubtitleStyle.Render("Run it yourself: cd "+display+" && "+command))
		return false
	}
	return true
}

// cdTarget is the directory to change into, relative to where the command
// ran, quoted for a POSIX shell.
func cdTarget(req scaffold.Request, res *scaffold.Result) string {
	dir := req.AppName
	if req.ParentDir != "" {
		dir = res.ProjectDir
	}
	if q, err := syntax.Quote(dir, syntax.LangPOSIX); err == nil {
		return q
	}
	return dir
}

func (a *App) printSummary(w io.Writer, req scaffold.Request, res *scaffold.Result, installed bool) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("Created %s at %s", req.AppName, res.ProjectDir)))

	if len(res.Copied) > 0 {
		fmt.Fprintln(w, "  Services: "+CmdStyle.Render(joinIDs(res.Copied)))
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "  Skipped:  "+WarningStyle.Render(joinIDs(res.Skipped)))
	}
	if res.Credentials != nil {
		fmt.Fprintln(w, "  Account:  "+CmdStyle.Render(res.Credentials.AccountID))
	}
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("Completed with %d warning(s).", n)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Next steps:"))
	step := 1
	next := func(s string) {
		fmt.Fprintf(w, "  %d. %s\n", step, s)
		step++
	}
	next("cd " + cdTarget(req, res))
	if !installed {
		next("npm install")
	}
	if res.Credentials == nil {
		next("Edit .env with your Hedera credentials")
	}
	next("npm run dev")
}

func joinIDs(ids []service.ID) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return strings.Join(out, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
