// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// ModulesSubdir is where fixture module folders live inside the modules tree.
const ModulesSubdir = "tools"

// TemplateTree writes a minimal starter template (package.json, README, a
// fake .git directory and a placeholder module index) and returns its root.
func TemplateTree(t testing.TB) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "template")
	WriteTree(t, root, map[string]string{
		"package.json": `{
  "name": "starter",
  "version": "0.1.0",
  "private": true,
  "description": "starter template",
  "scripts": {
    "dev": "next dev"
  }
}
`,
		"README.md":               "# starter\n",
		".git/HEAD":               "ref: refs/heads/main\n",
		"src/app/page.tsx":        "export default function Page() { return null; }\n",
		"src/modules/index.ts":    "// placeholder\n",
		"src/modules/tools/.keep": "",
	})
	return root
}

// ModulesTree writes a modules tree holding one folder per name below
// ModulesSubdir and returns the tree root.
func ModulesTree(t testing.TB, dirs ...string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "modules")
	files := map[string]string{"README.md": "# modules\n"}
	for _, d := range dirs {
		files[ModulesSubdir+"/"+d+"/index.ts"] = "export const tool = \"" + d + "\";\n"
		files[ModulesSubdir+"/"+d+"/lib/client.ts"] = "export {};\n"
	}
	WriteTree(t, root, files)
	return root
}
