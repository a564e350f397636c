// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

// Receipt is the outcome of one executed transaction.
type Receipt struct {
	// Reverted reports whether the instruction failed and all its effects
	// were rolled back.
	Reverted bool
	// Error holds the failure reason when reverted.
	Error string
	// Transfers lists the lamport movements the instruction caused.
	Transfers Transfers
}
