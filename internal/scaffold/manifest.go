// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"create-hedera-agent/internal/fsutil"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is written at the project root to record how the project
// was generated.
const ManifestFileName = "create-hedera-agent.toml"

type (
	// Manifest records the inputs and outcome of a scaffold run.
	Manifest struct {
		Generator string         `toml:"generator"`
		RunID     string         `toml:"run_id"`
		CreatedAt time.Time      `toml:"created_at"`
		App       string         `toml:"app"`
		Package   string         `toml:"package"`
		Services  []string       `toml:"services"`
		Template  SourceRecord   `toml:"template"`
		Modules   ModulesRecord  `toml:"modules"`
		Artifacts ArtifactRecord `toml:"artifacts"`
	}

	// SourceRecord is a fetched repository.
	SourceRecord struct {
		URL string `toml:"url"`
		Ref string `toml:"ref,omitempty"`
	}

	// ModulesRecord is the modules repository and what was taken from it.
	ModulesRecord struct {
		URL     string   `toml:"url"`
		Ref     string   `toml:"ref,omitempty"`
		Path    string   `toml:"path"`
		Copied  []string `toml:"copied"`
		Skipped []string `toml:"skipped"`
	}

	// ArtifactRecord lists generated files relative to the project root.
	ArtifactRecord struct {
		Index       string `toml:"index"`
		Composition string `toml:"composition"`
	}
)

// WriteManifest writes m to projectDir/ManifestFileName.
func WriteManifest(projectDir string, m *Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return fsutil.WriteFileAtomic(filepath.Join(projectDir, ManifestFileName), data, 0o644)
}

// ReadManifest loads projectDir/ManifestFileName.
func ReadManifest(projectDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, ManifestFileName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
