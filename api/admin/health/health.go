// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type EntryIngestion struct {
	Seq       uint64     `json:"seq"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy        bool            `json:"healthy"`
	Heartbeat      *time.Time      `json:"heartbeat"`
	EntryIngestion *EntryIngestion `json:"entryIngestion"`
}

// Health tracks the liveness of the executor loop. Entries only arrive when
// transactions do, so the age of the newest entry says nothing about
// liveness; the loop beats once per scheduling round instead.
type Health struct {
	lock      sync.RWMutex
	heartbeat time.Time
	bestSeq   uint64
	bestAt    time.Time
}

const defaultMaxTimeBetweenBeats = 10 * time.Second

// Beat records one round of the executor loop.
func (h *Health) Beat() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.heartbeat = time.Now()
}

// NewBestEntry records a freshly committed entry.
func (h *Health) NewBestEntry(seq uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bestSeq = seq
	h.bestAt = time.Now()
}

func (h *Health) Status(maxTimeBetweenBeats time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{}
	if !h.heartbeat.IsZero() {
		heartbeat := h.heartbeat
		status.Heartbeat = &heartbeat
		status.Healthy = time.Since(h.heartbeat) <= maxTimeBetweenBeats
	}
	if !h.bestAt.IsZero() {
		bestAt := h.bestAt
		status.EntryIngestion = &EntryIngestion{
			Seq:       h.bestSeq,
			Timestamp: &bestAt,
		}
	}
	return status, nil
}
