// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"create-hedera-agent/internal/cueutil"
	"create-hedera-agent/internal/fsutil"
	"create-hedera-agent/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "create-hedera-agent"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "HEDERA_AGENT"
)

// ErrConfigExists is returned by WriteDefault when a config file is present
// and overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Locate returns the config file that loading with opts would read, or ""
// when defaults apply.
func Locate(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Explicit names replace the automatic prefixed name, so it is listed first.
	if err := v.BindEnv("provisioning.operator_id",
		EnvPrefix+"_PROVISIONING_OPERATOR_ID", "HEDERA_OPERATOR_ID", "MY_ACCOUNT_ID"); err != nil {
		return nil, "", fmt.Errorf("failed to bind operator id: %w", err)
	}
	if err := v.BindEnv("provisioning.operator_key",
		EnvPrefix+"_PROVISIONING_OPERATOR_KEY", "HEDERA_OPERATOR_KEY", "MY_PRIVATE_KEY"); err != nil {
		return nil, "", fmt.Errorf("failed to bind operator key: %w", err)
	}

	if opts.ConfigFilePath != "" && !fileExists(opts.ConfigFilePath) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'create-hedera-agent config init' to write a default configuration").
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	resolvedPath, err := Locate(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'create-hedera-agent config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so the typed values are
	// checked again here.
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check HEDERA_AGENT_* environment variables for typos").
			WithSuggestion("Run 'create-hedera-agent config show' to see the effective configuration").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("template.url", defaults.Template.URL.String())
	v.SetDefault("template.ref", defaults.Template.Ref)
	v.SetDefault("modules.url", defaults.Modules.URL.String())
	v.SetDefault("modules.ref", defaults.Modules.Ref)
	v.SetDefault("modules.path", defaults.Modules.Path)
	v.SetDefault("fetch.backend", string(defaults.Fetch.Backend))
	v.SetDefault("fetch.concurrency", defaults.Fetch.Concurrency)
	v.SetDefault("output.extension", defaults.Output.Extension.String())
	v.SetDefault("network", string(defaults.Network))
	v.SetDefault("provisioning.initial_balance", defaults.Provisioning.InitialBalance)
	v.SetDefault("provisioning.max_transaction_fee", defaults.Provisioning.MaxTransactionFee)
	v.SetDefault("provisioning.operator_id", defaults.Provisioning.OperatorID)
	v.SetDefault("provisioning.operator_key", defaults.Provisioning.OperatorKey)
	v.SetDefault("install.command", defaults.Install.Command)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.accessible", defaults.UI.Accessible)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper, keeping defaults and env overrides in effect.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, "#Config", data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// WriteDefault writes the default configuration to dir/config.cue and returns
// its path. An empty dir means ConfigDir().
func WriteDefault(dir string, force bool) (string, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if !force && fileExists(cfgPath) {
		return cfgPath, fmt.Errorf("%w: %s", ErrConfigExists, cfgPath)
	}

	if err := fsutil.WriteFileAtomic(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration.
// The operator key is never written.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// create-hedera-agent configuration file\n")
	sb.WriteString("// Every field is optional. Environment variables prefixed with\n")
	sb.WriteString("// HEDERA_AGENT_ override these values.\n\n")

	sb.WriteString("template: {\n")
	fmt.Fprintf(&sb, "\turl: %q\n", cfg.Template.URL)
	if cfg.Template.Ref != "" {
		fmt.Fprintf(&sb, "\tref: %q\n", cfg.Template.Ref)
	}
	sb.WriteString("}\n")

	sb.WriteString("\nmodules: {\n")
	fmt.Fprintf(&sb, "\turl:  %q\n", cfg.Modules.URL)
	if cfg.Modules.Ref != "" {
		fmt.Fprintf(&sb, "\tref:  %q\n", cfg.Modules.Ref)
	}
	fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Modules.Path)
	sb.WriteString("}\n")

	sb.WriteString("\nfetch: {\n")
	fmt.Fprintf(&sb, "\tbackend:     %q\n", cfg.Fetch.Backend)
	fmt.Fprintf(&sb, "\tconcurrency: %d\n", cfg.Fetch.Concurrency)
	sb.WriteString("}\n")

	sb.WriteString("\noutput: {\n")
	fmt.Fprintf(&sb, "\textension: %q\n", cfg.Output.Extension)
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\nnetwork: %q\n", cfg.Network)

	sb.WriteString("\nprovisioning: {\n")
	fmt.Fprintf(&sb, "\tinitial_balance:     %d\n", cfg.Provisioning.InitialBalance)
	fmt.Fprintf(&sb, "\tmax_transaction_fee: %d\n", cfg.Provisioning.MaxTransactionFee)
	if cfg.Provisioning.OperatorID != "" {
		fmt.Fprintf(&sb, "\toperator_id:         %q\n", cfg.Provisioning.OperatorID)
	}
	sb.WriteString("}\n")

	sb.WriteString("\ninstall: {\n")
	fmt.Fprintf(&sb, "\tcommand: %q\n", cfg.Install.Command)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\taccessible:   %v\n", cfg.UI.Accessible)
	sb.WriteString("}\n")

	return sb.String()
}
