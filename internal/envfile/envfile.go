// SPDX-License-Identifier: MPL-2.0

// Package envfile renders and writes a generated project's .env and
// .env.example files.
package envfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"create-hedera-agent/internal/fsutil"
	"create-hedera-agent/internal/provision"
	"create-hedera-agent/internal/service"

	"github.com/charmbracelet/log"
)

const (
	// EnvFileName is the project's live environment file.
	EnvFileName = ".env"
	// ExampleFileName holds the same keys with placeholder values only.
	ExampleFileName = ".env.example"

	// KeyNetwork selects the Hedera network.
	KeyNetwork = "HEDERA_NETWORK"
	// KeyAccountID holds the project's account id.
	KeyAccountID = "HEDERA_ACCOUNT_ID"
	// KeyPrivateKey holds the project's account private key.
	KeyPrivateKey = "HEDERA_PRIVATE_KEY"
	// KeyPublicKey holds the project's account public key.
	KeyPublicKey = "HEDERA_PUBLIC_KEY"

	// DefaultNetwork is written when Options.Network is empty.
	DefaultNetwork = "testnet"
)

type (
	// Account holds the values written to the account keys. Empty fields are
	// written as blank values.
	Account struct {
		ID         string
		PrivateKey string
		PublicKey  string
	}

	// Options configures WriteConfig.
	Options struct {
		Network string
		// Services are the modules present in the project, in selection
		// order. Skipped modules get no section.
		Services []service.ID
		Logger   *log.Logger
	}

	// Result reports what WriteConfig produced.
	Result struct {
		EnvPath     string
		ExamplePath string
		// Credentials is nil unless provisioning was requested and succeeded.
		Credentials *provision.Credentials
		Warnings    []string
	}
)

// placeholderAccount fills .env.example.
var placeholderAccount = Account{
	ID:         "your-account-id-here",
	PrivateKey: "your-private-key-here",
	PublicKey:  "your-public-key-here",
}

// staticSections follow the account block in every rendered file.
var staticSections = []string{
	`# Hedera Node Configuration
HEDERA_NODE_ID=0.0.3
HEDERA_NODE_ACCOUNT=0.0.3`,
	`# AI/LLM Configuration
OPENAI_API_KEY=your-openai-api-key-here
ANTHROPIC_API_KEY=your-anthropic-api-key-here
GOOGLE_AI_API_KEY=your-google-ai-api-key-here`,
	`# LangChain Configuration
LANGCHAIN_API_KEY=your-langchain-api-key-here
LANGCHAIN_TRACING_V2=true
LANGCHAIN_ENDPOINT=https://api.smith.langchain.com`,
	`# Database Configuration (if needed)
DATABASE_URL=your-database-url-here`,
	`# Optional: External Services
PINECONE_API_KEY=your-pinecone-api-key-here
PINECONE_ENVIRONMENT=your-pinecone-environment-here`,
	`# Web3 Configuration
WEB3_PROVIDER_URL=your-web3-provider-url-here`,
	`# Application Configuration
NODE_ENV=development
PORT=3000`,
}

// Render returns the file content for the given account values: the network
// and account block, the static defaults, then one section per service in
// the given order.
func Render(network string, account Account, ids []service.ID) []byte {
	if network == "" {
		network = DefaultNetwork
	}

	var b bytes.Buffer
	b.WriteString("# Hedera Network Configuration\n")
	writePair(&b, KeyNetwork, network)
	writePair(&b, KeyAccountID, account.ID)
	writePair(&b, KeyPrivateKey, account.PrivateKey)
	writePair(&b, KeyPublicKey, account.PublicKey)

	for _, section := range staticSections {
		b.WriteString("\n")
		b.WriteString(section)
		b.WriteString("\n")
	}

	for _, id := range ids {
		entry, ok := service.Lookup(id)
		if !ok || entry.EnvSection == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(entry.EnvSection)
		b.WriteString("\n")
	}
	return b.Bytes()
}

// WriteConfig writes projectDir/.env and projectDir/.env.example. When
// requested is true the provisioner is invoked exactly once; a nil
// provisioner, an error or a nil result leaves the account keys blank and
// adds a warning instead of failing. Each file is written once, atomically.
func WriteConfig(ctx context.Context, projectDir string, requested bool, p provision.Provisioner, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	res := &Result{
		EnvPath:     filepath.Join(projectDir, EnvFileName),
		ExamplePath: filepath.Join(projectDir, ExampleFileName),
	}

	var account Account
	if requested {
		creds, warning := provisionOnce(ctx, p)
		if warning != "" {
			logger.Warn(warning)
			res.Warnings = append(res.Warnings, warning)
		} else {
			logger.Info("account created", "account", creds.AccountID, "status", creds.Status)
			res.Credentials = creds
			account = Account{ID: creds.AccountID, PrivateKey: creds.PrivateKey, PublicKey: creds.PublicKey}
		}
	}

	if err := fsutil.WriteFileAtomic(res.EnvPath, Render(opts.Network, account, opts.Services), 0o600); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", EnvFileName, err)
	}
	if err := fsutil.WriteFileAtomic(res.ExamplePath, Render(opts.Network, placeholderAccount, opts.Services), 0o644); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", ExampleFileName, err)
	}
	return res, nil
}

func provisionOnce(ctx context.Context, p provision.Provisioner) (*provision.Credentials, string) {
	if p == nil {
		return nil, "account provisioning is not configured (set HEDERA_OPERATOR_ID and HEDERA_OPERATOR_KEY); account fields left blank"
	}
	creds, err := p.CreateAccount(ctx)
	if err != nil {
		return nil, fmt.Sprintf("account provisioning failed: %v; account fields left blank", err)
	}
	if creds == nil {
		return nil, "account provisioning returned no account; account fields left blank"
	}
	return creds, ""
}

func writePair(b *bytes.Buffer, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(quote(value))
	b.WriteByte('\n')
}

// quote leaves plain values bare and quotes anything a dotenv parser could
// misread. Single quotes are literal, so they carry values with a double quote,
// which dotenv cannot read back from a double-quoted value. Everything else is
// double-quoted with escapes.
func quote(v string) string {
	if !strings.ContainsAny(v, " \t#\"'\\\n=$") {
		return v
	}
	if strings.Contains(v, `"`) && !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "$", `\$`)
	return `"` + r.Replace(v) + `"`
}
