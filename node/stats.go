// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
)

type entryStats struct {
	committed, reverted, dropped int
	transferred                  uint64
}

func (s *entryStats) UpdateCommitted(n int, amount uint64) {
	s.committed += n
	s.transferred += amount
}

func (s *entryStats) UpdateReverted(n int) {
	s.reverted += n
}

func (s *entryStats) UpdateDropped(n int) {
	s.dropped += n
}

func (s *entryStats) LogContext(headSeq uint64, elapsed mclock.AbsTime) []interface{} {
	return []interface{}{
		"txs", s.committed + s.reverted,
		"reverted", s.reverted,
		"dropped", s.dropped,
		"lamports", s.transferred,
		"et", common.PrettyDuration(elapsed),
		"head", headSeq,
	}
}
