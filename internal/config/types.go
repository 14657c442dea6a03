// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/provision"
)

const (
	// DefaultTemplateURL is the starter application repository.
	DefaultTemplateURL RepoURL = "https://github.com/hedera-dev/create-hedera-agent-starter-app.git"
	// DefaultModulesURL is the repository holding one folder per service module.
	DefaultModulesURL RepoURL = "https://github.com/hedera-dev/hedera-agent-modules.git"
	// DefaultModulesPath is the folder of the modules repository that holds
	// the per-service folders.
	DefaultModulesPath = "tools"
	// DefaultInstallCommand installs the generated project's dependencies.
	DefaultInstallCommand = "npm install"
	// DefaultConcurrency bounds parallel module copies.
	DefaultConcurrency = 4

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidRepoURL is returned when a RepoURL is empty or whitespace-only.
	ErrInvalidRepoURL = errors.New("invalid repository url")
	// ErrInvalidExtension is returned when a FileExtension is not supported.
	ErrInvalidExtension = errors.New("invalid file extension")
	// ErrInvalidConcurrency is returned for a non-positive copy concurrency.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
	// ErrInvalidProvisioningConfig is the sentinel error wrapped by InvalidProvisioningConfigError.
	ErrInvalidProvisioningConfig = errors.New("invalid provisioning config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	supportedExtensions = []FileExtension{"ts", "tsx", "mts", "js", "jsx", "mjs"}
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// RepoURL is a git URL or a local directory path.
	RepoURL string

	// InvalidRepoURLError is returned when a RepoURL is empty or whitespace-only.
	InvalidRepoURLError struct {
		Field string
		Value RepoURL
	}

	// FileExtension is the extension of generated source files, without dot.
	FileExtension string

	// InvalidExtensionError is returned when a FileExtension is not supported.
	InvalidExtensionError struct {
		Value FileExtension
	}

	// InvalidConcurrencyError is returned for a non-positive concurrency.
	InvalidConcurrencyError struct {
		Value int
	}

	// InvalidProvisioningConfigError collects provisioning field errors.
	InvalidProvisioningConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Template is the starter application fetched in full.
		Template SourceConfig `json:"template" mapstructure:"template"`
		// Modules is the repository fetched sparsely for the selected services.
		Modules ModulesConfig `json:"modules" mapstructure:"modules"`
		// Fetch selects how repositories are retrieved.
		Fetch FetchConfig `json:"fetch" mapstructure:"fetch"`
		// Output configures generated files.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Network is written to the project's .env and used for provisioning.
		Network provision.Network `json:"network" mapstructure:"network"`
		// Provisioning configures account creation.
		Provisioning ProvisioningConfig `json:"provisioning" mapstructure:"provisioning"`
		// Install configures the optional post-scaffold install step.
		Install InstallConfig `json:"install" mapstructure:"install"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// SourceConfig names a repository and optional ref.
	SourceConfig struct {
		URL RepoURL `json:"url" mapstructure:"url"`
		Ref string  `json:"ref" mapstructure:"ref"`
	}

	// ModulesConfig names the modules repository and the folder holding the
	// per-service module folders.
	ModulesConfig struct {
		URL  RepoURL `json:"url" mapstructure:"url"`
		Ref  string  `json:"ref" mapstructure:"ref"`
		Path string  `json:"path" mapstructure:"path"`
	}

	// FetchConfig selects the fetch backend.
	FetchConfig struct {
		Backend     fetch.Backend `json:"backend" mapstructure:"backend"`
		Concurrency int           `json:"concurrency" mapstructure:"concurrency"`
	}

	// OutputConfig configures generated files.
	OutputConfig struct {
		Extension FileExtension `json:"extension" mapstructure:"extension"`
	}

	// ProvisioningConfig configures account creation. Operator credentials
	// usually come from the environment rather than the config file.
	ProvisioningConfig struct {
		InitialBalance    int64  `json:"initial_balance" mapstructure:"initial_balance"`
		MaxTransactionFee int64  `json:"max_transaction_fee" mapstructure:"max_transaction_fee"`
		OperatorID        string `json:"operator_id" mapstructure:"operator_id"`
		OperatorKey       string `json:"-" mapstructure:"operator_key"`
	}

	// InstallConfig configures the post-scaffold install step.
	InstallConfig struct {
		Command string `json:"command" mapstructure:"command"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Accessible renders prompts as plain line-oriented questions
		Accessible bool `json:"accessible" mapstructure:"accessible"`
	}
)

// ProvisionOptions converts the provisioning settings for provision.NewHedera.
func (c Config) ProvisionOptions() provision.Options {
	balance := c.Provisioning.InitialBalance
	return provision.Options{
		Network:           c.Network,
		OperatorID:        c.Provisioning.OperatorID,
		OperatorKey:       c.Provisioning.OperatorKey,
		InitialBalance:    &balance,
		MaxTransactionFee: c.Provisioning.MaxTransactionFee,
	}
}

// HasOperator reports whether operator credentials are configured.
func (c ProvisioningConfig) HasOperator() bool {
	return strings.TrimSpace(c.OperatorID) != "" && strings.TrimSpace(c.OperatorKey) != ""
}

// IsValid returns whether the ProvisioningConfig has valid fields.
func (c ProvisioningConfig) IsValid() (bool, []error) {
	var errs []error
	if c.InitialBalance < 0 {
		errs = append(errs, fmt.Errorf("initial_balance must not be negative, got %d", c.InitialBalance))
	}
	if c.MaxTransactionFee < 0 {
		errs = append(errs, fmt.Errorf("max_transaction_fee must not be negative, got %d", c.MaxTransactionFee))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidProvisioningConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidProvisioningConfigError.
func (e *InvalidProvisioningConfigError) Error() string {
	return fmt.Sprintf("invalid provisioning config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidProvisioningConfig for errors.Is() compatibility.
func (e *InvalidProvisioningConfigError) Unwrap() error { return ErrInvalidProvisioningConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to each typed field's IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	collect := func(valid bool, fieldErrs []error) {
		if !valid {
			errs = append(errs, fieldErrs...)
		}
	}

	collect(c.Template.URL.validate("template.url"))
	collect(c.Modules.URL.validate("modules.url"))
	collect(c.Fetch.Backend.IsValid())
	if c.Fetch.Concurrency < 1 {
		errs = append(errs, &InvalidConcurrencyError{Value: c.Fetch.Concurrency})
	}
	collect(c.Output.Extension.IsValid())
	collect(c.Network.IsValid())
	collect(c.Provisioning.IsValid())
	collect(c.UI.ColorScheme.IsValid())

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so both the
// sentinel and each field's own error match errors.Is and errors.As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the RepoURL.
func (u RepoURL) String() string { return string(u) }

// IsValid returns whether the RepoURL is non-blank.
func (u RepoURL) IsValid() (bool, []error) { return u.validate("url") }

func (u RepoURL) validate(field string) (bool, []error) {
	if strings.TrimSpace(string(u)) == "" {
		return false, []error{&InvalidRepoURLError{Field: field, Value: u}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRepoURLError.
func (e *InvalidRepoURLError) Error() string {
	return fmt.Sprintf("%s: repository url must not be empty (got %q)", e.Field, e.Value)
}

// Unwrap returns ErrInvalidRepoURL for errors.Is() compatibility.
func (e *InvalidRepoURLError) Unwrap() error { return ErrInvalidRepoURL }

// String returns the string representation of the FileExtension.
func (x FileExtension) String() string { return string(x) }

// IsValid returns whether x is a supported JavaScript or TypeScript extension.
func (x FileExtension) IsValid() (bool, []error) {
	for _, ok := range supportedExtensions {
		if x == ok {
			return true, nil
		}
	}
	return false, []error{&InvalidExtensionError{Value: x}}
}

// Error implements the error interface for InvalidExtensionError.
func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid file extension %q (valid: ts, tsx, mts, js, jsx, mjs)", e.Value)
}

// Unwrap returns ErrInvalidExtension for errors.Is() compatibility.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// Error implements the error interface for InvalidConcurrencyError.
func (e *InvalidConcurrencyError) Error() string {
	return fmt.Sprintf("fetch.concurrency must be at least 1, got %d", e.Value)
}

// Unwrap returns ErrInvalidConcurrency for errors.Is() compatibility.
func (e *InvalidConcurrencyError) Unwrap() error { return ErrInvalidConcurrency }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Template: SourceConfig{
			URL: DefaultTemplateURL,
		},
		Modules: ModulesConfig{
			URL:  DefaultModulesURL,
			Path: DefaultModulesPath,
		},
		Fetch: FetchConfig{
			Backend:     fetch.BackendAuto,
			Concurrency: DefaultConcurrency,
		},
		Output: OutputConfig{
			Extension: "ts",
		},
		Network: provision.NetworkTestnet,
		Provisioning: ProvisioningConfig{
			InitialBalance:    provision.DefaultInitialBalance,
			MaxTransactionFee: provision.DefaultMaxTransactionFee,
		},
		Install: InstallConfig{
			Command: DefaultInstallCommand,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Accessible:  false,
		},
	}
}
