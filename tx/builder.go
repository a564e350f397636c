// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/pledgechain/pledge/pledge"

// Builder makes it easy to build a transaction.
type Builder struct {
	body body
}

// NewBuilder creates a builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// GenesisRef sets the referenced genesis id.
func (b *Builder) GenesisRef(ref pledge.Bytes32) *Builder {
	b.body.GenesisRef = ref
	return b
}

// Expiration sets the last ledger sequence the tx may execute at.
func (b *Builder) Expiration(exp uint64) *Builder {
	b.body.Expiration = exp
	return b
}

// Nonce sets the nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Program sets the program the instruction addresses.
func (b *Builder) Program(id pledge.Pubkey) *Builder {
	b.body.ProgramID = id
	return b
}

// Account appends an account meta.
func (b *Builder) Account(key pledge.Pubkey, signer, writable bool) *Builder {
	b.body.Accounts = append(b.body.Accounts, AccountMeta{
		Key:      key,
		Signer:   signer,
		Writable: writable,
	})
	return b
}

// Data sets the instruction payload.
func (b *Builder) Data(data []byte) *Builder {
	b.body.Data = append([]byte(nil), data...)
	return b
}

// Build builds the unsigned tx.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	tx.body.Accounts = append([]AccountMeta(nil), b.body.Accounts...)
	return &tx
}
