// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"create-hedera-agent/internal/fsutil"
	"create-hedera-agent/internal/service"
)

const (
	packageJSONName = "package.json"
	readmeName      = "README.md"
)

type jsonField struct {
	key   string
	value json.RawMessage
}

var readmeTemplate = template.Must(template.New("readme").Parse(`# {{.AppName}}

An AI agent built with Hedera integration using the following services:
{{range .Services}}
- {{.ID}}
{{- end}}

## Setup

1. Install dependencies:
   ` + "```" + `bash
   npm install
   ` + "```" + `

2. Configure your environment variables:
   ` + "```" + `bash
   cp .env.example .env
   # Edit .env with your actual values
   ` + "```" + `

3. Start the development server:
   ` + "```" + `bash
   npm run dev
   ` + "```" + `

## Environment Variables

Make sure to configure all required environment variables in your ` + "`.env`" + ` file. See ` + "`.env.example`" + ` for all available options.

## Hedera Services

This project includes the following Hedera services:
{{range .Services}}
- **{{.Title}}**: {{.Description}}
{{- end}}
{{- if .Skipped}}

The following selected services were not available upstream and are not wired in:
{{range .Skipped}}
- {{.}}
{{- end}}
{{- end}}
`))

// PackageDescription is the package.json description for a selection.
func PackageDescription(ids []service.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return "AI Agent with Hedera integration - " + strings.Join(names, ", ")
}

// customizePackageJSON sets name and description in projectDir/package.json,
// keeping every other key and the key order. A template without package.json
// is left alone.
func customizePackageJSON(projectDir, appName string, ids []service.ID) error {
	path := filepath.Join(projectDir, packageJSONName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	out, err := rewritePackageJSON(data, map[string]string{
		"name":        PackageName(appName),
		"description": PackageDescription(ids),
	})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", packageJSONName, err)
	}
	return fsutil.WriteFileAtomic(path, out, 0o644)
}

// rewritePackageJSON replaces or appends top-level string fields of a JSON
// object. Existing keys keep their position; new keys go last in sorted
// order. Output is indented with two spaces.
func rewritePackageJSON(data []byte, set map[string]string) ([]byte, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(set))
	for i := range fields {
		v, ok := set[fields[i].key]
		if !ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[i].value = raw
		seen[fields[i].key] = true
	}

	for _, key := range slices.Sorted(maps.Keys(set)) {
		if seen[key] {
			continue
		}
		raw, err := json.Marshal(set[key])
		if err != nil {
			return nil, err
		}
		fields = append(fields, jsonField{key: key, value: raw})
	}

	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		if err := json.Compact(&compact, f.value); err != nil {
			return nil, err
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func decodeObject(data []byte) ([]jsonField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top-level value is not an object")
	}

	var fields []jsonField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		fields = append(fields, jsonField{key: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// writeReadme replaces the template README with one describing the project.
func writeReadme(projectDir, appName string, copied, skipped []service.ID) error {
	entries := make([]service.Entry, 0, len(copied))
	for _, id := range copied {
		if e, ok := service.Lookup(id); ok {
			entries = append(entries, e)
		}
	}

	var buf bytes.Buffer
	err := readmeTemplate.Execute(&buf, struct {
		AppName  string
		Services []service.Entry
		Skipped  []service.ID
	}{strings.TrimSpace(appName), entries, skipped})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", readmeName, err)
	}
	return fsutil.WriteFileAtomic(filepath.Join(projectDir, readmeName), buf.Bytes(), 0o644)
}
