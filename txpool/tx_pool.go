// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/event"

	"github.com/pledgechain/pledge/co"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/log"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

var logger = log.WithContext("pkg", "txpool")

// Options options for tx pool.
type Options struct {
	Limit           int
	LimitPerAccount int
	MaxLifetime     time.Duration
}

// TxEvent will be posted when a tx is accepted into the pool.
type TxEvent struct {
	Tx *tx.Transaction
}

// TxPool maintains unprocessed transactions.
type TxPool struct {
	options Options
	ledger  *ledger.Ledger

	executables    atomic.Value
	all            *txObjectMap
	addedAfterWash uint32

	ctx    context.Context
	cancel func()
	txFeed event.Feed
	scope  event.SubscriptionScope
	goes   co.Goes
}

// New create a new TxPool instance.
// Shutdown is required to be called at end.
func New(ldgr *ledger.Ledger, options Options) *TxPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &TxPool{
		options: options,
		ledger:  ldgr,
		all:     newTxObjectMap(),
		ctx:     ctx,
		cancel:  cancel,
	}

	pool.goes.Go(pool.housekeeping)
	return pool
}

func (p *TxPool) housekeeping() {
	logger.Debug("enter housekeeping")
	defer logger.Debug("leave housekeeping")

	ticker := time.NewTicker(time.Second * 1)
	defer ticker.Stop()

	headSeq := p.ledger.HeadSeq()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			var headChanged bool
			if newHead := p.ledger.HeadSeq(); newHead != headSeq {
				headSeq = newHead
				headChanged = true
			}
			poolLen := p.all.Len()
			// do wash on
			// 1. head of the ledger moved
			// 2. pool size exceeds limit
			// 3. new tx added while pool size is small
			if headChanged ||
				poolLen > p.options.Limit ||
				(poolLen < 200 && atomic.LoadUint32(&p.addedAfterWash) > 0) {
				atomic.StoreUint32(&p.addedAfterWash, 0)

				startTime := mclock.Now()
				executables, removed, err := p.wash(headSeq)
				elapsed := mclock.Now() - startTime

				ctx := []interface{}{
					"len", poolLen,
					"removed", removed,
					"elapsed", common.PrettyDuration(elapsed),
				}
				if err != nil {
					ctx = append(ctx, "err", err)
				} else {
					p.executables.Store(executables)
					metricTxPoolExecutablesGauge().Set(int64(len(executables)))
				}
				if removed > 0 {
					metricTxPoolGauge().AddWithLabel(0-int64(removed), map[string]string{"source": "washed"})
				}
				logger.Trace("wash done", ctx...)
			}
		}
	}
}

// Close cleanup inner go routines.
func (p *TxPool) Close() {
	p.cancel()
	p.scope.Close()
	p.goes.Wait()
	logger.Debug("closed")
}

// SubscribeTxEvent receivers will receive a tx
func (p *TxPool) SubscribeTxEvent(ch chan *TxEvent) event.Subscription {
	return p.scope.Track(p.txFeed.Subscribe(ch))
}

// Add adds a new tx into pool.
// It's not assumed as an error if the tx to be added is already in the pool.
func (p *TxPool) Add(newTx *tx.Transaction) (err error) {
	defer func() {
		if err != nil {
			metricBadTxCounter().Add(1)
		}
	}()

	if p.all.Contains(newTx.ID()) {
		// tx already in the pool
		return nil
	}

	if newTx.Size() > pledge.MaxTxSize {
		return errTooLarge
	}

	headSeq := p.ledger.HeadSeq()
	if exp := newTx.Expiration(); exp != 0 {
		if exp <= headSeq {
			return errExpired
		}
		if exp > headSeq+pledge.TxMaxExpiration {
			return badTxError{"expiration too far ahead"}
		}
	}

	if has, err := p.ledger.HasTransaction(newTx.ID()); err != nil {
		return err
	} else if has {
		return errKnownTx
	}

	txObj, err := resolveTx(newTx, p.ledger.GenesisID())
	if err != nil {
		return badTxError{err.Error()}
	}

	// reject when pool size exceeds 120% of limit
	if p.all.Len() >= p.options.Limit*12/10 {
		return txRejectedError{"pool is full"}
	}

	if err := p.all.Add(txObj, p.options.LimitPerAccount); err != nil {
		return txRejectedError{err.Error()}
	}

	p.goes.Go(func() {
		p.txFeed.Send(&TxEvent{newTx})
	})
	atomic.AddUint32(&p.addedAfterWash, 1)
	metricTxPoolGauge().AddWithLabel(1, map[string]string{"source": "added"})
	logger.Trace("tx added", "id", newTx.ID())
	return nil
}

// Get get pooled tx by id.
func (p *TxPool) Get(id pledge.Bytes32) *tx.Transaction {
	if txObj := p.all.GetByID(id); txObj != nil {
		return txObj.Transaction
	}
	return nil
}

// Remove removes tx from pool by its id.
func (p *TxPool) Remove(id pledge.Bytes32) bool {
	if p.all.Remove(id) {
		metricTxPoolGauge().AddWithLabel(-1, map[string]string{"source": "n/a"})
		logger.Debug("tx removed", "id", id)
		return true
	}
	return false
}

// Executables returns the executable txs in the pool, in first-come first-served order.
func (p *TxPool) Executables() tx.Transactions {
	if sorted := p.executables.Load(); sorted != nil {
		return sorted.(tx.Transactions)
	}
	return nil
}

// Dump dumps all txs in the pool.
func (p *TxPool) Dump() tx.Transactions {
	return p.all.ToTxs()
}

// Len returns the count of txs in the pool.
func (p *TxPool) Len() int {
	return p.all.Len()
}

// wash to evict txs that are over limit, out of lifetime, expired, or already
// settled on the ledger.
// this method should only be called in housekeeping go routine
func (p *TxPool) wash(headSeq uint64) (executables tx.Transactions, removed int, err error) {
	all := p.all.ToTxObjects()
	var toRemove []*txObject
	defer func() {
		if err != nil {
			// in case of error, simply cut pool size to limit
			for i, txObj := range all {
				if len(all)-i <= p.options.Limit {
					break
				}
				removed++
				p.all.Remove(txObj.ID())
			}
		} else {
			for _, txObj := range toRemove {
				p.all.Remove(txObj.ID())
				removed++
			}
		}
	}()

	var (
		executableObjs = make([]*txObject, 0, len(all))
		now            = time.Now().UnixNano()
	)
	for _, txObj := range all {
		// out of lifetime
		if now > txObj.timeAdded+int64(p.options.MaxLifetime) {
			toRemove = append(toRemove, txObj)
			logger.Trace("tx washed out", "id", txObj.ID(), "err", "out of lifetime")
			continue
		}
		// settled or expired
		if err := txObj.Executable(p.ledger, headSeq+1); err != nil {
			toRemove = append(toRemove, txObj)
			logger.Trace("tx washed out", "id", txObj.ID(), "err", err)
			continue
		}
		executableObjs = append(executableObjs, txObj)
	}

	// sort by time added, oldest first
	sortTxObjsByTimeAddedAsc(executableObjs)

	// remove over limit txs, keeping the oldest
	if len(executableObjs) > p.options.Limit {
		for _, txObj := range executableObjs[p.options.Limit:] {
			toRemove = append(toRemove, txObj)
			logger.Debug("tx washed out due to pool limit", "id", txObj.ID())
		}
		executableObjs = executableObjs[:p.options.Limit]
	}

	executables = make(tx.Transactions, 0, len(executableObjs))
	for _, txObj := range executableObjs {
		executables = append(executables, txObj.Transaction)
	}
	return executables, 0, nil
}
