// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// Hedera creates accounts on a Hedera network, paid for by the operator
// account. The client is built once and shared by every CreateAccount call.
type Hedera struct {
	client  *hedera.Client
	network Network
	balance hedera.Hbar
	maxFee  hedera.Hbar
}

// NewHedera validates opts and builds a client for the configured network.
// No network traffic happens until CreateAccount.
func NewHedera(opts Options) (*Hedera, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	operatorID, err := hedera.AccountIDFromString(opts.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid operator account id %q: %w", opts.OperatorID, err)
	}
	operatorKey, err := hedera.PrivateKeyFromString(opts.OperatorKey)
	if err != nil {
		return nil, fmt.Errorf("invalid operator private key: %w", err)
	}

	client, err := hedera.ClientForName(opts.Network.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", opts.Network, err)
	}
	client.SetOperator(operatorID, operatorKey)

	return &Hedera{
		client:  client,
		network: opts.Network,
		balance: hedera.NewHbar(float64(*opts.InitialBalance)),
		maxFee:  hedera.NewHbar(float64(opts.MaxTransactionFee)),
	}, nil
}

// CreateAccount generates an ED25519 key pair and submits an account
// creation transaction funded with the configured initial balance. The SDK
// call is not cancellable; a canceled ctx abandons the wait but the
// transaction may still reach consensus.
func (h *Hedera) CreateAccount(ctx context.Context) (*Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProvisionError{Network: h.network, Err: err}
	}

	type result struct {
		creds *Credentials
		err   error
	}
	done := make(chan result, 1)
	go func() {
		creds, err := h.createAccount()
		done <- result{creds, err}
	}()

	select {
	case <-ctx.Done():
		return nil, &ProvisionError{Network: h.network, Err: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			return nil, &ProvisionError{Network: h.network, Err: r.err}
		}
		return r.creds, nil
	}
}

func (h *Hedera) createAccount() (*Credentials, error) {
	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	publicKey := privateKey.PublicKey()

	resp, err := hedera.NewAccountCreateTransaction().
		SetKey(publicKey).
		SetInitialBalance(h.balance).
		SetMaxTransactionFee(h.maxFee).
		Execute(h.client)
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}

	receipt, err := resp.GetReceipt(h.client)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	creds := &Credentials{
		PublicKey:  publicKey.String(),
		PrivateKey: privateKey.String(),
		Status:     receipt.Status.String(),
	}
	if receipt.AccountID != nil {
		creds.AccountID = receipt.AccountID.String()
	}
	return creds, nil
}

// Close releases the client's network connections.
func (h *Hedera) Close() error {
	return h.client.Close()
}
