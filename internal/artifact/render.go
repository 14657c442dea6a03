// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"strings"

	"create-hedera-agent/internal/service"
)

const (
	// GeneratedHeader marks generated files so editors and linters skip them.
	GeneratedHeader = "// Code generated by create-hedera-agent. DO NOT EDIT."

	// EntryPointName is the exported function of the composition file.
	EntryPointName = "createHederaTools"

	// ToolsDirName is the folder, relative to the composition file, that holds
	// the copied modules.
	ToolsDirName = "tools"
)

// NamingRule maps a service to the factory symbol its module exports.
type NamingRule func(service.ID) string

// DefaultNaming is the fixed createHedera<ID>Tools rule.
func DefaultNaming(id service.ID) string { return id.FactoryName() }

// RenderIndex renders the tools index: one re-export per copied module in the
// given order.
func RenderIndex(copied []service.ID) []byte {
	var sb strings.Builder
	sb.WriteString(GeneratedHeader)
	sb.WriteString("\n\n")
	for _, id := range copied {
		fmt.Fprintf(&sb, "export * from \"./%s\";\n", id.Dir())
	}
	return []byte(sb.String())
}

// RenderComposition renders the composition entry point. It imports one
// factory per copied module and exports a function that returns the
// concatenation of every factory applied to the given context.
func RenderComposition(copied []service.ID, naming NamingRule) []byte {
	return renderComposition(copied, naming, true)
}

// RenderCompositionJS renders the composition entry point for plain
// JavaScript projects: the same code without type annotations.
func RenderCompositionJS(copied []service.ID, naming NamingRule) []byte {
	return renderComposition(copied, naming, false)
}

func renderComposition(copied []service.ID, naming NamingRule, typed bool) []byte {
	if naming == nil {
		naming = DefaultNaming
	}

	var sb strings.Builder
	sb.WriteString(GeneratedHeader)
	sb.WriteString("\n\n")

	for _, id := range copied {
		fmt.Fprintf(&sb, "import { %s } from \"./%s/%s\";\n", naming(id), ToolsDirName, id.Dir())
	}
	if len(copied) > 0 {
		sb.WriteString("\n")
	}

	// The context type is taken from the first factory so the generated code
	// stays type-checked without importing an SDK type itself.
	param := "context"
	if typed {
		contextType := "unknown"
		if len(copied) > 0 {
			contextType = fmt.Sprintf("Parameters<typeof %s>[0]", naming(copied[0]))
		}
		param += ": " + contextType
	}

	fmt.Fprintf(&sb, "export const %s = (%s) => [\n", EntryPointName, param)
	for _, id := range copied {
		fmt.Fprintf(&sb, "  ...%s(context),\n", naming(id))
	}
	sb.WriteString("];\n")

	return []byte(sb.String())
}
