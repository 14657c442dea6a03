// SPDX-License-Identifier: MPL-2.0

package service

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Ham is the Hedera Account Service module.
	Ham ID = "Ham"
	// Hts is the Hedera Token Service module.
	Hts ID = "Hts"
	// Hscs is the Hedera Smart Contract Service module.
	Hscs ID = "Hscs"
	// Hcs is the Hedera Consensus Service module.
	Hcs ID = "Hcs"

	factoryPrefix = "createHedera"
	factorySuffix = "Tools"
)

var (
	// ErrUnknownService is the sentinel error wrapped by UnknownServiceError.
	ErrUnknownService = errors.New("unknown service")

	// ErrEmptySelection is returned when no service was selected.
	ErrEmptySelection = errors.New("at least one service must be selected")
)

type (
	// ID is the canonical identifier of a selectable service module.
	ID string

	// UnknownServiceError is returned when a service identifier does not match
	// any catalogue entry.
	UnknownServiceError struct {
		Value string
	}

	// Entry describes one catalogue service.
	Entry struct {
		ID          ID
		Title       string
		Description string
		// EnvSection holds the service-specific .env block, without the
		// leading blank line.
		EnvSection string
	}
)

var catalogue = []Entry{
	{
		ID:          Ham,
		Title:       "HAM - Hedera Account Service",
		Description: "For creating and managing accounts on Hedera",
		EnvSection: `# Hedera Account Management Configuration
ACCOUNT_CREATOR_ID=your-creator-account-id-here
ACCOUNT_CREATOR_KEY=your-creator-private-key-here
INITIAL_BALANCE=1000000000`,
	},
	{
		ID:          Hts,
		Title:       "HTS - Hedera Token Service",
		Description: "For creating and managing tokens on Hedera",
		EnvSection: `# Hedera Token Service Configuration
TOKEN_ID=your-token-id-here
TOKEN_TREASURY_ACCOUNT=your-treasury-account-here
TOKEN_SUPPLY_KEY=your-supply-key-here
TOKEN_ADMIN_KEY=your-admin-key-here
TOKEN_FREEZE_KEY=your-freeze-key-here
TOKEN_KYC_KEY=your-kyc-key-here
TOKEN_WIPE_KEY=your-wipe-key-here`,
	},
	{
		ID:          Hscs,
		Title:       "HSCS - Hedera Smart Contract Service",
		Description: "For deploying and interacting with smart contracts",
		EnvSection: `# Hedera Smart Contract Service Configuration
CONTRACT_ID=your-contract-id-here
CONTRACT_BYTECODE=your-contract-bytecode-here
CONTRACT_GAS_LIMIT=300000
CONTRACT_INITIAL_BALANCE=0`,
	},
	{
		ID:          Hcs,
		Title:       "HCS - Hedera Consensus Service",
		Description: "For message ordering using the Hedera consensus mechanism",
		EnvSection: `# Hedera Consensus Service Configuration
HCS_TOPIC_ID=your-topic-id-here
HCS_SUBMIT_KEY=your-submit-key-here
HCS_ADMIN_KEY=your-admin-key-here`,
	},
}

// Catalogue returns every known service in display order.
func Catalogue() []Entry {
	out := make([]Entry, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the catalogue entry for id.
func Lookup(id ID) (Entry, bool) {
	for _, e := range catalogue {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Parse normalises s into a canonical ID. Matching is case-insensitive and
// ignores surrounding whitespace, so "hts", "HTS" and " Hts " all yield Hts.
func Parse(s string) (ID, error) {
	trimmed := strings.TrimSpace(s)
	for _, e := range catalogue {
		if strings.EqualFold(string(e.ID), trimmed) {
			return e.ID, nil
		}
	}
	return "", &UnknownServiceError{Value: s}
}

// String returns the canonical identifier.
func (id ID) String() string { return string(id) }

// IsValid reports whether id is a canonical catalogue identifier.
func (id ID) IsValid() (bool, []error) {
	if _, ok := Lookup(id); !ok {
		return false, []error{&UnknownServiceError{Value: string(id)}}
	}
	return true, nil
}

// Dir is the directory name used for the module, both in the modules
// repository and in the generated project.
func (id ID) Dir() string { return strings.ToLower(string(id)) }

// FactoryName is the capability factory exported by the module, e.g.
// createHederaHtsTools.
func (id ID) FactoryName() string { return factoryPrefix + string(id) + factorySuffix }

// Error implements the error interface for UnknownServiceError.
func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service %q (valid: %s)", e.Value, strings.Join(Names(), ", "))
}

// Unwrap returns ErrUnknownService for errors.Is() compatibility.
func (e *UnknownServiceError) Unwrap() error { return ErrUnknownService }

// Names returns the canonical identifiers in catalogue order.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, e := range catalogue {
		names[i] = string(e.ID)
	}
	return names
}
