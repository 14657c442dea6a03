// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"path/filepath"
	"strings"

	"create-hedera-agent/internal/fetch"
	"create-hedera-agent/internal/platform"
	"create-hedera-agent/internal/service"
)

// DefaultModulesPath is the folder of the modules repository holding one
// sub-folder per service.
const DefaultModulesPath = "tools"

// Request describes one scaffold run.
type Request struct {
	// AppName is used verbatim as the project directory name.
	AppName string
	// ParentDir holds the new project; empty means the working directory.
	ParentDir string
	Services  service.Selection
	Template  fetch.Source
	Modules   fetch.Source
	// ModulesPath is the folder inside the modules repository holding
	// per-service folders (default DefaultModulesPath).
	ModulesPath string
	// Provision requests a new account for the project's .env.
	Provision bool
	Network   string
}

// Target returns the project directory the request would create.
func (r Request) Target() string {
	return filepath.Join(r.ParentDir, strings.TrimSpace(r.AppName))
}

// Validate checks everything that can be checked without touching the
// filesystem.
func (r Request) Validate() error {
	if err := ValidateAppName(r.AppName); err != nil {
		return err
	}
	if r.Services.IsEmpty() {
		return service.ErrEmptySelection
	}
	if r.Template.URL == "" || r.Modules.URL == "" {
		return &InvalidSourceError{Template: r.Template.URL, Modules: r.Modules.URL}
	}
	return nil
}

func (r Request) modulesPath() string {
	p := strings.Trim(filepath.ToSlash(r.ModulesPath), "/")
	if p == "" {
		return DefaultModulesPath
	}
	return p
}

// sparsePaths lists the repository paths of the selected modules.
func (r Request) sparsePaths() []string {
	base := r.modulesPath()
	ids := r.Services.IDs()
	paths := make([]string, len(ids))
	for i, id := range ids {
		paths[i] = base + "/" + id.Dir()
	}
	return paths
}

// ValidateAppName rejects names that are empty, would escape the parent
// directory, or are not portable directory names.
func ValidateAppName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return &InvalidAppNameError{Name: name, Reason: "app name is required"}
	case trimmed == "." || trimmed == "..":
		return &InvalidAppNameError{Name: name, Reason: "must name a new directory"}
	case strings.ContainsAny(trimmed, `/\`):
		return &InvalidAppNameError{Name: name, Reason: "must not contain path separators"}
	case platform.HasInvalidNameChars(trimmed):
		return &InvalidAppNameError{Name: name, Reason: `must not contain control characters or any of <>:"|?*`}
	case platform.IsWindowsReservedName(trimmed):
		return &InvalidAppNameError{Name: name, Reason: "is a reserved device name on Windows"}
	}
	return nil
}

// PackageName derives the npm package name: lowercase with whitespace runs
// replaced by "-".
func PackageName(appName string) string {
	return strings.Join(strings.Fields(strings.ToLower(appName)), "-")
}
