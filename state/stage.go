// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/pledgechain/pledge/kv"

// Stage holds the batched account writes of one state playback.
type Stage struct {
	batch kv.Batch
}

// Commit atomically writes the staged changes into the account store.
func (stage *Stage) Commit() error {
	if err := stage.batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}

// Len returns the number of staged account writes.
func (stage *Stage) Len() int {
	return stage.batch.Len()
}
