// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the ledger's account state.
// Reads and writes flow as below:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ staging ] -> [ account store ]
//	          |
//	  [ account cache ]
//	          |
//	 [ read-only store ]
//
// Accounts live flat in a key-value bucket, one RLP-encoded record per
// pubkey. There is no commitment structure over them; the single-executor
// node makes its own writes the only source of truth.
package state
