// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rent computes the minimum balance an account must hold to stay
// exempt from host-level reclamation. It is a pure function of the account's
// data size; no state is consulted.
package rent

const (
	// accountStorageOverhead bytes of per-account bookkeeping charged on top
	// of the data buffer.
	accountStorageOverhead = 128

	// lamportsPerByteYear rent rate.
	lamportsPerByteYear = 3480

	// exemptionThresholdYears years of rent an exempt account must cover.
	exemptionThresholdYears = 2
)

// MinimumBalance returns the rent-exempt minimum for an account with the
// given data buffer length.
func MinimumBalance(dataLen uint64) uint64 {
	return (accountStorageOverhead + dataLen) * lamportsPerByteYear * exemptionThresholdYears
}
