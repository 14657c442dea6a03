// SPDX-License-Identifier: MPL-2.0

// Package provision creates funded Hedera accounts for freshly scaffolded
// projects.
//
// The Provisioner interface is the only thing the scaffolder sees. Hedera is
// the network-backed implementation: it is built once from operator
// credentials, then each CreateAccount call generates an ED25519 key pair and
// submits an account-create transaction paid for by the operator:
//
//	p, err := provision.NewHedera(provision.Options{
//		Network:     provision.NetworkTestnet,
//		OperatorID:  "0.0.1234",
//		OperatorKey: key,
//	})
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	creds, err := p.CreateAccount(ctx)
//
// Func adapts a plain function for tests and for composition roots that need
// a provisioner which always fails.
package provision
