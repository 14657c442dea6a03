// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"path/filepath"

	"create-hedera-agent/internal/fsutil"
	"create-hedera-agent/internal/service"
)

// DefaultExt is the source extension of generated files.
const DefaultExt = "ts"

// Layout locates the generated files inside a project.
type Layout struct {
	// ProjectDir is the root of the generated project.
	ProjectDir string
	// Ext is the source file extension without dot (default "ts").
	Ext string
}

// ModulesDir is <project>/src/modules.
func (l Layout) ModulesDir() string {
	return filepath.Join(l.ProjectDir, "src", "modules")
}

// ToolsDir is <project>/src/modules/tools, where module folders are copied.
func (l Layout) ToolsDir() string {
	return filepath.Join(l.ModulesDir(), ToolsDirName)
}

// IndexPath is <project>/src/modules/tools/index.<ext>.
func (l Layout) IndexPath() string {
	return filepath.Join(l.ToolsDir(), "index."+l.ext())
}

// CompositionPath is <project>/src/modules/index.<ext>.
func (l Layout) CompositionPath() string {
	return filepath.Join(l.ModulesDir(), "index."+l.ext())
}

// IsTypeScript reports whether path has a TypeScript extension.
func IsTypeScript(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".tsx", ".mts":
		return true
	}
	return false
}

func (l Layout) ext() string {
	if l.Ext == "" {
		return DefaultExt
	}
	return l.Ext
}

// WriteIndex replaces the file at path with the rendered tools index.
func WriteIndex(copied []service.ID, path string) error {
	if err := fsutil.WriteFileAtomic(path, RenderIndex(copied), 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// WriteComposition replaces the file at path with the rendered composition
// entry point. JavaScript paths get the untyped rendering.
func WriteComposition(copied []service.ID, path string, naming NamingRule) error {
	render := RenderComposition
	if !IsTypeScript(path) {
		render = RenderCompositionJS
	}
	if err := fsutil.WriteFileAtomic(path, render(copied, naming), 0o644); err != nil {
		return fmt.Errorf("failed to write composition: %w", err)
	}
	return nil
}

// WriteAll writes both artifacts for the copied modules. It must be called
// once per run, after every copy outcome is known.
func WriteAll(l Layout, copied []service.ID, naming NamingRule) error {
	if err := WriteIndex(copied, l.IndexPath()); err != nil {
		return err
	}
	return WriteComposition(copied, l.CompositionPath(), naming)
}
