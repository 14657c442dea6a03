// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
)

const (
	// NetworkTestnet is the public test network.
	NetworkTestnet Network = "testnet"
	// NetworkPreviewnet is the public preview network.
	NetworkPreviewnet Network = "previewnet"
	// NetworkMainnet is the production network.
	NetworkMainnet Network = "mainnet"

	// DefaultInitialBalance is the new account's starting balance in hbar.
	DefaultInitialBalance int64 = 50
	// DefaultMaxTransactionFee caps what the operator pays per account, in hbar.
	DefaultMaxTransactionFee int64 = 100
)

var (
	// ErrMissingOperator is returned when no operator account or key is
	// configured. The operator pays for and signs account creation.
	ErrMissingOperator = errors.New("operator account id and private key are required for provisioning")
	// ErrInvalidNetwork is the sentinel error wrapped by InvalidNetworkError.
	ErrInvalidNetwork = errors.New("invalid network")
	// ErrProvision is the sentinel error wrapped by ProvisionError.
	ErrProvision = errors.New("account provisioning failed")
)

type (
	// Network names a Hedera network.
	Network string

	// InvalidNetworkError is returned when a Network value is not recognized.
	InvalidNetworkError struct {
		Value Network
	}

	// Credentials describes a newly created account. Any field may be empty
	// when the network did not report it.
	Credentials struct {
		AccountID  string
		PublicKey  string
		PrivateKey string
		Status     string
	}

	// Provisioner creates one account per call.
	Provisioner interface {
		CreateAccount(ctx context.Context) (*Credentials, error)
	}

	// Func adapts a function to the Provisioner interface.
	Func func(ctx context.Context) (*Credentials, error)

	// Options configures the Hedera provisioner.
	Options struct {
		Network     Network
		OperatorID  string
		OperatorKey string
		// InitialBalance is in whole hbar; nil means DefaultInitialBalance and
		// zero creates an unfunded account.
		InitialBalance *int64
		// MaxTransactionFee is in whole hbar; zero means DefaultMaxTransactionFee.
		MaxTransactionFee int64
	}

	// ProvisionError wraps a failed account creation.
	ProvisionError struct {
		Network Network
		Err     error
	}
)

// CreateAccount calls f.
func (f Func) CreateAccount(ctx context.Context) (*Credentials, error) { return f(ctx) }

// String returns the network name.
func (n Network) String() string { return string(n) }

// IsValid reports whether n names a known network.
func (n Network) IsValid() (bool, []error) {
	switch n {
	case NetworkTestnet, NetworkPreviewnet, NetworkMainnet:
		return true, nil
	default:
		return false, []error{&InvalidNetworkError{Value: n}}
	}
}

// Error implements the error interface for InvalidNetworkError.
func (e *InvalidNetworkError) Error() string {
	return fmt.Sprintf("invalid network %q (valid: testnet, previewnet, mainnet)", e.Value)
}

// Unwrap returns ErrInvalidNetwork for errors.Is() compatibility.
func (e *InvalidNetworkError) Unwrap() error { return ErrInvalidNetwork }

// Error implements the error interface for ProvisionError.
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("failed to create %s account: %v", e.Network, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProvisionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrProvision) match any ProvisionError.
func (e *ProvisionError) Is(target error) bool { return target == ErrProvision }

// Validate checks the options without contacting the network.
func (o Options) Validate() error {
	if o.OperatorID == "" || o.OperatorKey == "" {
		return ErrMissingOperator
	}
	if ok, errs := o.Network.IsValid(); !ok {
		return errors.Join(errs...)
	}
	if o.InitialBalance != nil && *o.InitialBalance < 0 {
		return fmt.Errorf("initial balance must not be negative, got %d", *o.InitialBalance)
	}
	if o.MaxTransactionFee < 0 {
		return fmt.Errorf("max transaction fee must not be negative, got %d", o.MaxTransactionFee)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Network == "" {
		o.Network = NetworkTestnet
	}
	if o.InitialBalance == nil {
		balance := DefaultInitialBalance
		o.InitialBalance = &balance
	}
	if o.MaxTransactionFee == 0 {
		o.MaxTransactionFee = DefaultMaxTransactionFee
	}
	return o
}
