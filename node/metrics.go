// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/pledgechain/pledge/metrics"
)

var (
	metricEntryPackedCount  = metrics.LazyLoadCounterVec("entry_packed_count", []string{"status"})
	metricTxDroppedCount    = metrics.LazyLoadCounter("tx_dropped_count")
	metricTransferredAmount = metrics.LazyLoadCounter("transferred_lamports_total")
	metricPackingDuration   = metrics.LazyLoadHistogram("entry_packing_duration_ms", metrics.Bucket10s)
)
