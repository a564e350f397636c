// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"errors"
	"sync"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

// txObjectMap to maintain mapping of tx id to tx object, and account quota.
type txObjectMap struct {
	lock    sync.RWMutex
	mapByID map[pledge.Bytes32]*txObject
	quota   map[pledge.Pubkey]int
}

func newTxObjectMap() *txObjectMap {
	return &txObjectMap{
		mapByID: make(map[pledge.Bytes32]*txObject),
		quota:   make(map[pledge.Pubkey]int),
	}
}

func (m *txObjectMap) Contains(id pledge.Bytes32) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, found := m.mapByID[id]
	return found
}

func (m *txObjectMap) Add(txObj *txObject, limitPerAccount int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	id := txObj.ID()
	if _, found := m.mapByID[id]; found {
		return nil
	}

	if m.quota[txObj.Origin()] >= limitPerAccount {
		return errors.New("account quota exceeded")
	}

	m.quota[txObj.Origin()]++
	m.mapByID[id] = txObj
	return nil
}

func (m *txObjectMap) GetByID(id pledge.Bytes32) *txObject {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.mapByID[id]
}

func (m *txObjectMap) Remove(id pledge.Bytes32) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	if txObj, ok := m.mapByID[id]; ok {
		if m.quota[txObj.Origin()] > 1 {
			m.quota[txObj.Origin()]--
		} else {
			delete(m.quota, txObj.Origin())
		}
		delete(m.mapByID, id)
		return true
	}
	return false
}

func (m *txObjectMap) ToTxObjects() []*txObject {
	m.lock.RLock()
	defer m.lock.RUnlock()

	txObjs := make([]*txObject, 0, len(m.mapByID))
	for _, txObj := range m.mapByID {
		txObjs = append(txObjs, txObj)
	}
	return txObjs
}

func (m *txObjectMap) ToTxs() tx.Transactions {
	m.lock.RLock()
	defer m.lock.RUnlock()

	txs := make(tx.Transactions, 0, len(m.mapByID))
	for _, txObj := range m.mapByID {
		txs = append(txs, txObj.Transaction)
	}
	return txs
}

func (m *txObjectMap) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return len(m.mapByID)
}
