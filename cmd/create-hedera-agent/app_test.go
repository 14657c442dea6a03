// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"create-hedera-agent/internal/config"
	"create-hedera-agent/internal/envfile"
	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/provision"
	"create-hedera-agent/internal/scaffold"
	"create-hedera-agent/internal/service"
	"create-hedera-agent/internal/testutil"
	"create-hedera-agent/internal/tui"

	"github.com/google/go-cmp/cmp"
	"github.com/joho/godotenv"
)

type (
	fakePrompter struct {
		name      string
		services  []service.ID
		provision bool
		err       error
		asked     []string
	}

	fakeInstaller struct {
		dir, command string
		err          error
	}

	testApp struct {
		app    *App
		stdout *bytes.Buffer
		stderr *bytes.Buffer
		parent string
	}
)

func (p *fakePrompter) AppName(context.Context) (string, error) {
	p.asked = append(p.asked, "name")
	return p.name, p.err
}

func (p *fakePrompter) Services(_ context.Context, entries []service.Entry) ([]service.ID, error) {
	p.asked = append(p.asked, "services")
	if len(entries) != len(service.Catalogue()) {
		return nil, errors.New("catalogue not offered")
	}
	return p.services, p.err
}

func (p *fakePrompter) ConfirmProvision(context.Context, provision.Network) (bool, error) {
	p.asked = append(p.asked, "provision")
	return p.provision, p.err
}

func (i *fakeInstaller) Run(_ context.Context, dir, command string) error {
	i.dir, i.command = dir, command
	return i.err
}

// newTestApp wires an App against local template and modules trees.
func newTestApp(t *testing.T, deps Dependencies, modules ...string) *testApp {
	t.Helper()
	if len(modules) == 0 {
		modules = []string{"hts", "hcs", "ham", "hscs"}
	}

	cfg := config.DefaultConfig()
	cfg.Template.URL = config.RepoURL(testutil.TemplateTree(t))
	cfg.Modules.URL = config.RepoURL(testutil.ModulesTree(t, modules...))
	cfg.Fetch.Backend = fetch.BackendLocal

	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, parent: t.TempDir()}
	if deps.Config == nil {
		deps.Config = config.StaticProvider{Config: cfg}
	}
	if deps.Interactive == nil {
		deps.Interactive = func() bool { return false }
	}
	if deps.Installer == nil {
		deps.Installer = &fakeInstaller{}
	}
	deps.TempDir = t.TempDir()
	deps.Stdin = strings.NewReader("")
	deps.Stdout = ta.stdout
	deps.Stderr = ta.stderr
	ta.app = NewApp(deps)
	return ta
}

func (ta *testApp) run(args ...string) int {
	return Execute(context.Background(), ta.app, append(args, "--dir", ta.parent))
}

func (ta *testApp) project(name string) string {
	return filepath.Join(ta.parent, name)
}

func readEnv(t *testing.T, path string) map[string]string {
	t.Helper()
	env, err := godotenv.Unmarshal(testutil.MustReadFile(t, path))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return env
}

func TestCreate_NonInteractive(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{})
	if code := ta.run("my-agent", "--services", "HTS,hcs"); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}

	dir := ta.project("my-agent")
	for _, rel := range []string{
		"src/modules/tools/hts/index.ts",
		"src/modules/tools/hcs/lib/client.ts",
		"src/modules/tools/index.ts",
		"src/modules/index.ts",
		"src/app/page.tsx",
		".env",
		".env.example",
		"create-hedera-agent.toml",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); !os.IsNotExist(err) {
		t.Error(".git should not be copied")
	}
	if _, err := os.Stat(filepath.Join(dir, "src/modules/tools/ham")); !os.IsNotExist(err) {
		t.Error("unselected module was copied")
	}

	composition := testutil.MustReadFile(t, filepath.Join(dir, "src/modules/index.ts"))
	if !strings.Contains(composition, "createHederaHtsTools") || !strings.Contains(composition, "createHederaHcsTools") {
		t.Errorf("composition missing factories:\n%s", composition)
	}

	env := readEnv(t, filepath.Join(dir, ".env"))
	if env[envfile.KeyNetwork] != "testnet" || env[envfile.KeyAccountID] != "" {
		t.Errorf("unexpected .env account block: %v", env)
	}

	out := ta.stdout.String()
	if !strings.Contains(out, "Created my-agent") || !strings.Contains(out, "Hts, Hcs") {
		t.Errorf("stdout missing summary:\n%s", out)
	}
	if !strings.Contains(out, "npm install") {
		t.Errorf("next steps should mention npm install:\n%s", out)
	}
}

func TestCreate_TargetExists(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{})
	testutil.MustMkdirAll(t, ta.project("taken"), 0o755)
	testutil.WriteTree(t, ta.project("taken"), map[string]string{"keep.txt": "mine\n"})

	if code := ta.run("taken", "--services", "hts"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(ta.stderr.String(), "already exists") {
		t.Errorf("stderr = %q", ta.stderr)
	}
	got := testutil.SnapshotTree(t, ta.project("taken"))
	if diff := cmp.Diff(map[string]string{"keep.txt": "mine\n"}, got); diff != "" {
		t.Errorf("existing directory modified (-want +got):\n%s", diff)
	}
}

func TestCreate_MissingInputsWithoutPrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no app name", args: []string{"--services", "hts"}, wantErr: "app name is required"},
		{name: "no services", args: []string{"my-agent"}, wantErr: "at least one service"},
		{name: "unknown service", args: []string{"my-agent", "--services", "hxx"}, wantErr: "unknown service"},
		{name: "bad name", args: []string{"a/b", "--services", "hts"}, wantErr: "path separators"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ta := newTestApp(t, Dependencies{})
			if code := ta.run(tt.args...); code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(ta.stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want %q", ta.stderr, tt.wantErr)
			}
			entries, _ := os.ReadDir(ta.parent)
			if len(entries) != 0 {
				t.Errorf("parent directory not empty: %v", entries)
			}
		})
	}
}

func TestCreate_InteractivePrompts(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{name: "prompted", services: []service.ID{service.Hcs}}
	ta := newTestApp(t, Dependencies{Prompter: p, Interactive: func() bool { return true }})

	if code := ta.run(); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}
	if diff := cmp.Diff([]string{"name", "services", "provision"}, p.asked); diff != "" {
		t.Errorf("prompts (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(ta.project("prompted"), "src/modules/tools/hcs/index.ts")); err != nil {
		t.Errorf("module not copied: %v", err)
	}
}

func TestCreate_FlagsSkipPrompts(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{}
	ta := newTestApp(t, Dependencies{Prompter: p, Interactive: func() bool { return true }})

	if code := ta.run("flagged", "--services", "hts", "--provision=false"); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}
	if len(p.asked) != 0 {
		t.Errorf("prompted for %v although flags were given", p.asked)
	}
}

func TestCreate_NoInputDisablesPrompts(t *testing.T) {
	t.Parallel()

	p := &fakePrompter{name: "never"}
	ta := newTestApp(t, Dependencies{Prompter: p, Interactive: func() bool { return true }})

	if code := ta.run("--services", "hts", "--no-input"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if len(p.asked) != 0 {
		t.Errorf("prompted with --no-input: %v", p.asked)
	}
}

func TestCreate_Cancelled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    *fakePrompter
	}{
		{name: "abort", p: &fakePrompter{err: tui.ErrCancelled}},
		{name: "empty selection", p: &fakePrompter{name: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ta := newTestApp(t, Dependencies{Prompter: tt.p, Interactive: func() bool { return true }})
			if code := ta.run(); code != 0 {
				t.Fatalf("exit code = %d, want 0", code)
			}
			if !strings.Contains(ta.stdout.String(), "Setup cancelled.") {
				t.Errorf("stdout = %q", ta.stdout)
			}
			entries, _ := os.ReadDir(ta.parent)
			if len(entries) != 0 {
				t.Errorf("cancelled run wrote %v", entries)
			}
		})
	}
}

func TestCreate_Provisioned(t *testing.T) {
	t.Parallel()

	calls := 0
	factory := func(*config.Config) (provision.Provisioner, func() error) {
		return provision.Func(func(context.Context) (*provision.Credentials, error) {
			calls++
			return &provision.Credentials{AccountID: "0.0.4242", PrivateKey: "priv", PublicKey: "pub", Status: "SUCCESS"}, nil
		}), func() error { return nil }
	}
	ta := newTestApp(t, Dependencies{NewProvisioner: factory})

	if code := ta.run("funded", "--services", "hts", "--provision"); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}
	if calls != 1 {
		t.Errorf("provisioner called %d times, want 1", calls)
	}
	env := readEnv(t, filepath.Join(ta.project("funded"), ".env"))
	if env[envfile.KeyAccountID] != "0.0.4242" || env[envfile.KeyPrivateKey] != "priv" || env[envfile.KeyPublicKey] != "pub" {
		t.Errorf(".env account block = %v", env)
	}
	if !strings.Contains(ta.stdout.String(), "0.0.4242") {
		t.Errorf("summary does not show the account:\n%s", ta.stdout)
	}
}

func TestCreate_ProvisioningWithoutOperator(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{})
	if code := ta.run("unfunded", "--services", "hts", "--provision"); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}
	env := readEnv(t, filepath.Join(ta.project("unfunded"), ".env"))
	if env[envfile.KeyAccountID] != "" || env[envfile.KeyPrivateKey] != "" {
		t.Errorf("account fields should be blank: %v", env)
	}
	if !strings.Contains(ta.stderr.String(), "operator") {
		t.Errorf("expected provisioning warning on stderr, got %q", ta.stderr)
	}
	if !strings.Contains(ta.stdout.String(), "1 warning") {
		t.Errorf("summary should count the warning:\n%s", ta.stdout)
	}
}

func TestCreate_ProvisionerNotBuiltUnlessRequested(t *testing.T) {
	t.Parallel()

	built := false
	factory := func(*config.Config) (provision.Provisioner, func() error) {
		built = true
		return nil, func() error { return nil }
	}
	ta := newTestApp(t, Dependencies{NewProvisioner: factory})
	if code := ta.run("plain", "--services", "hts"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if built {
		t.Error("provisioner built without --provision")
	}
}

func TestCreate_MissingModuleWarns(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{}, "hts")
	if code := ta.run("partial-mods", "--services", "hts,hscs"); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}
	if !strings.Contains(ta.stdout.String(), "Skipped:  Hscs") {
		t.Errorf("summary should list skipped module:\n%s", ta.stdout)
	}
	index := testutil.MustReadFile(t, filepath.Join(ta.project("partial-mods"), "src/modules/index.ts"))
	if strings.Contains(index, "Hscs") {
		t.Errorf("skipped module referenced in composition:\n%s", index)
	}
}

func TestCreate_Install(t *testing.T) {
	t.Parallel()

	inst := &fakeInstaller{}
	ta := newTestApp(t, Dependencies{Installer: inst})
	if code := ta.run("installed", "--services", "hts", "--install"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if inst.dir != ta.project("installed") || inst.command != config.DefaultInstallCommand {
		t.Errorf("installer called with %q, %q", inst.dir, inst.command)
	}
	if strings.Contains(ta.stdout.String(), "2. npm install") {
		t.Errorf("next steps should skip npm install after installing:\n%s", ta.stdout)
	}
}

func TestCreate_InstallFailureIsWarning(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{Installer: &fakeInstaller{err: errors.New("npm: not found")}})
	if code := ta.run("install-fails", "--services", "hts", "--install"); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(ta.stderr.String(), "dependency installation failed") {
		t.Errorf("stderr = %q", ta.stderr)
	}
	if _, err := os.Stat(ta.project("install-fails")); err != nil {
		t.Errorf("project removed after install failure: %v", err)
	}
}

func TestCreate_NextStepsUseProjectDir(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{Installer: &fakeInstaller{err: errors.New("npm: not found")}})
	if code := ta.run("elsewhere", "--services", "hts", "--install"); code != 0 {
		t.Fatalf("exit code = %d\nstderr: %s", code, ta.stderr)
	}

	cd := "cd " + ta.project("elsewhere")
	if !strings.Contains(ta.stdout.String(), "1. "+cd+"\n") {
		t.Errorf("next steps should change into %s:\n%s", ta.project("elsewhere"), ta.stdout)
	}
	if !strings.Contains(ta.stderr.String(), cd+" && "+config.DefaultInstallCommand) {
		t.Errorf("install hint should use the project path:\n%s", ta.stderr)
	}
}

func TestCdTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parent string
		dir    string
		want   string
	}{
		{"working directory", "", "my-agent", "my-agent"},
		{"parent directory", "/work", "/work/my-agent", "/work/my-agent"},
		{"needs quoting", "/my projects", "/my projects/my-agent", "'/my projects/my-agent'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := scaffold.Request{AppName: "my-agent", ParentDir: tt.parent}
			if got := cdTarget(req, &scaffold.Result{ProjectDir: tt.dir}); got != tt.want {
				t.Errorf("cdTarget() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewApp_InteractiveFollowsStdin(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })

	for name, in := range map[string]io.Reader{"reader": strings.NewReader(""), "regular file": f} {
		app := NewApp(Dependencies{Stdin: in, Stdout: io.Discard, Stderr: io.Discard})
		if app.Interactive() {
			t.Errorf("%s: Interactive() = true for a non-terminal stdin", name)
		}
	}
}

func TestPrompter_UsesInjectedStreams(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("my-agent\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp(Dependencies{Stdin: in, Stdout: stdout, Stderr: stderr})

	p, ok := app.prompter(config.DefaultConfig()).(*tuiPrompter)
	if !ok {
		t.Fatalf("prompter() returned %T", app.prompter(config.DefaultConfig()))
	}
	if p.cfg.Input != in {
		t.Error("prompts do not read from the injected stdin")
	}
	if !p.cfg.Accessible {
		t.Error("a non-terminal stdin should select accessible prompts")
	}
	if p.cfg.Output != stderr {
		t.Error("accessible prompts should write to the injected stderr")
	}
}

func TestCreate_FetchFailure(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Template.URL = config.RepoURL(filepath.Join(t.TempDir(), "missing-template"))
	cfg.Modules.URL = config.RepoURL(testutil.ModulesTree(t, "hts"))
	cfg.Fetch.Backend = fetch.BackendLocal

	ta := newTestApp(t, Dependencies{Config: config.StaticProvider{Config: cfg}})
	if code := ta.run("nofetch", "--services", "hts"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(ta.project("nofetch")); !os.IsNotExist(err) {
		t.Error("target created although fetch failed")
	}
	if !strings.Contains(ta.stderr.String(), "fetch") {
		t.Errorf("stderr = %q", ta.stderr)
	}
}

func TestCreate_ConfigLoadError(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{Config: errProvider{err: errors.New("broken config")}})
	if code := ta.run("x", "--services", "hts"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(ta.stderr.String(), "broken config") {
		t.Errorf("stderr = %q", ta.stderr)
	}
}

type errProvider struct{ err error }

func (p errProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return nil, p.err
}

func TestServicesCommand(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{})
	if code := Execute(context.Background(), ta.app, []string{"services"}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	out := ta.stdout.String()
	for _, e := range service.Catalogue() {
		if !strings.Contains(out, e.Title) {
			t.Errorf("services output missing %q:\n%s", e.Title, out)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, Dependencies{})
	dir := filepath.Join(t.TempDir(), "cfg")

	if code := Execute(context.Background(), ta.app, []string{"config", "init", "--dir", dir}); code != 0 {
		t.Fatalf("config init exit code = %d\nstderr: %s", code, ta.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.cue")); err != nil {
		t.Fatalf("config.cue not written: %v", err)
	}
	if code := Execute(context.Background(), ta.app, []string{"config", "init", "--dir", dir}); code != 0 {
		t.Fatalf("second config init exit code = %d", code)
	}
	if !strings.Contains(ta.stdout.String(), "already exists") {
		t.Errorf("second init should report existing file:\n%s", ta.stdout)
	}

	ta.stdout.Reset()
	if code := Execute(context.Background(), ta.app, []string{"config", "show"}); code != 0 {
		t.Fatalf("config show exit code = %d", code)
	}
	if !strings.Contains(ta.stdout.String(), `network: "testnet"`) {
		t.Errorf("config show output:\n%s", ta.stdout)
	}
}
