// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import "github.com/pledgechain/pledge/pledge"

// Account is a handler's view of one account bound to an instruction.
// The host supplies the concrete implementation; mutations stay buffered
// there until the whole instruction succeeds.
type Account interface {
	// Key returns the account's public key.
	Key() pledge.Pubkey
	// Owner returns the program that owns the account.
	Owner() pledge.Pubkey
	// SetOwner reassigns the owning program.
	SetOwner(id pledge.Pubkey)
	// Lamports returns the current balance.
	Lamports() uint64
	// SetLamports overwrites the balance.
	SetLamports(v uint64)
	// Data returns a copy of the account's data buffer.
	Data() []byte
	// SetData overwrites the data buffer.
	SetData(b []byte)
	// IsSigner reports whether the account authorized the transaction.
	IsSigner() bool
	// IsWritable reports whether the transaction flagged the account
	// writable.
	IsWritable() bool
}
