// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/pledgechain/pledge/pledge"

// Transfer describes one lamport movement caused by an executed
// transaction.
type Transfer struct {
	Sender    pledge.Pubkey
	Recipient pledge.Pubkey
	Amount    uint64
}

// Transfers is a slice of transfers.
type Transfers []*Transfer
