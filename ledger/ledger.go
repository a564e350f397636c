// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/co"
	"github.com/pledgechain/pledge/kv"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

// ErrKnownTx is returned when committing a transaction whose ID is already
// on the ledger.
var ErrKnownTx = errors.New("known tx")

var errNotFound = errors.New("not found")

// Entry is one committed execution.
type Entry struct {
	Seq     uint64
	Time    uint64
	Tx      *tx.Transaction
	Receipt *tx.Receipt
}

// Ledger records executed transactions and their receipts under a strictly
// increasing sequence number, starting at 1. Sequence 0 is the genesis
// state itself.
//
// It's thread-safe.
type Ledger struct {
	store     kv.GetPutter
	genesisID pledge.Bytes32

	lock    sync.RWMutex
	headSeq uint64

	entryCache *cache
	tick       co.Signal
}

// NewLedger opens the ledger over store. A fresh store is initialized to
// genesisID; a non-empty one must have been initialized to the same genesis.
func NewLedger(store kv.GetPutter, genesisID pledge.Bytes32) (*Ledger, error) {
	props := propBucket.NewGetPutter(store)

	val, err := props.Get(genesisIDKey)
	if err != nil {
		if !props.IsNotFound(err) {
			return nil, err
		}
		batch := store.NewBatch()
		if err := propBucket.NewPutter(batch).Put(genesisIDKey, genesisID[:]); err != nil {
			return nil, err
		}
		if err := saveHeadSeq(batch, 0); err != nil {
			return nil, err
		}
		if err := batch.Write(); err != nil {
			return nil, err
		}
	} else if pledge.BytesToBytes32(val) != genesisID {
		return nil, errors.New("genesis mismatch")
	}

	headVal, err := props.Get(headSeqKey)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		store:      store,
		genesisID:  genesisID,
		headSeq:    decodeSeq(headVal),
		entryCache: newCache(2048),
	}, nil
}

// GenesisID returns the ID of the genesis the ledger grew from.
func (l *Ledger) GenesisID() pledge.Bytes32 {
	return l.genesisID
}

// HeadSeq returns the sequence number of the newest entry, 0 when the
// ledger holds none.
func (l *Ledger) HeadSeq() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.headSeq
}

// Commit appends the execution of trx as the next entry. The entry and the
// new head are written in one batch, so a crash cannot leave them apart.
func (l *Ledger) Commit(trx *tx.Transaction, receipt *tx.Receipt, time uint64) (*Entry, error) {
	id := trx.ID()

	l.lock.Lock()
	defer l.lock.Unlock()

	if has, err := entryBucket.NewGetter(l.store).Has(id[:]); err != nil {
		return nil, err
	} else if has {
		return nil, ErrKnownTx
	}

	entry := &Entry{
		Seq:     l.headSeq + 1,
		Time:    time,
		Tx:      trx,
		Receipt: receipt,
	}
	batch := l.store.NewBatch()
	if err := saveEntry(batch, entry); err != nil {
		return nil, err
	}
	if err := saveHeadSeq(batch, entry.Seq); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}

	l.headSeq = entry.Seq
	l.entryCache.Add(id, entry)
	l.tick.Broadcast()
	return entry, nil
}

// HasTransaction returns whether the transaction with the given ID is on
// the ledger.
func (l *Ledger) HasTransaction(id pledge.Bytes32) (bool, error) {
	if _, ok := l.entryCache.Get(id); ok {
		return true, nil
	}
	return entryBucket.NewGetter(l.store).Has(id[:])
}

// GetEntry retrieves the entry of the transaction with the given ID.
func (l *Ledger) GetEntry(id pledge.Bytes32) (*Entry, error) {
	entry, err := l.entryCache.GetOrLoad(id, func() (interface{}, error) {
		return loadEntry(l.store, id)
	})
	if err != nil {
		if l.store.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	return entry.(*Entry), nil
}

// GetEntryBySeq retrieves the entry committed at the given sequence number.
func (l *Ledger) GetEntryBySeq(seq uint64) (*Entry, error) {
	val, err := indexBucket.NewGetter(l.store).Get(encodeSeq(seq))
	if err != nil {
		if l.store.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, err
	}
	return l.GetEntry(pledge.BytesToBytes32(val))
}

// IterateEntries walks entries in sequence order starting at fromSeq, until
// cb returns false or the head is passed.
func (l *Ledger) IterateEntries(fromSeq uint64, cb func(*Entry) bool) error {
	it := indexBucket.NewGetter(l.store).NewIterator(kv.Range{From: encodeSeq(fromSeq)})
	defer it.Release()
	for it.Next() {
		entry, err := l.GetEntry(pledge.BytesToBytes32(it.Value()))
		if err != nil {
			return err
		}
		if !cb(entry) {
			break
		}
	}
	return it.Error()
}

// IsNotFound returns whether err means the queried entry does not exist.
func (l *Ledger) IsNotFound(err error) bool {
	return err == errNotFound || l.store.IsNotFound(err)
}

// NewTicker creates a waiter signaled on every committed entry.
func (l *Ledger) NewTicker() co.Waiter {
	return l.tick.NewWaiter()
}
