// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pledge

// Constants of the ledger.
const (
	// MaxTxSize max size in bytes of an encoded transaction accepted by the pool.
	MaxTxSize = 32 * 1024

	// MaxAccountDataSize cap on the data buffer size an account can be
	// provisioned with. Bounds record size and rent math.
	MaxAccountDataSize = 10 * 1024

	// TxMaxExpiration max count of sequence steps a tx stays executable after
	// its reference sequence.
	TxMaxExpiration = 720

	// ExecInterval default seconds between executor rounds.
	ExecInterval = 1
)
