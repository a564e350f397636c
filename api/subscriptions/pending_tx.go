// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/pledgechain/pledge/tx"
	"github.com/pledgechain/pledge/txpool"
)

type pendingTx struct {
	pool      *txpool.TxPool
	listeners map[chan *tx.Transaction]struct{}
	mu        sync.RWMutex
	knownTx   *lru.Cache
}

func newPendingTx(pool *txpool.TxPool) *pendingTx {
	cache, _ := lru.New(2000)

	return &pendingTx{
		pool:      pool,
		listeners: make(map[chan *tx.Transaction]struct{}),
		knownTx:   cache,
	}
}

func (p *pendingTx) Subscribe(ch chan *tx.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.listeners[ch] = struct{}{}
}

func (p *pendingTx) Unsubscribe(ch chan *tx.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.listeners, ch)
}

func (p *pendingTx) DispatchLoop(done <-chan struct{}) {
	txCh := make(chan *txpool.TxEvent)
	sub := p.pool.SubscribeTxEvent(txCh)
	defer sub.Unsubscribe()

	for {
		select {
		case txEv := <-txCh:
			// a tx id enters the pool once, dispatch it once
			if _, ok := p.knownTx.Get(txEv.Tx.ID()); ok {
				continue
			}
			p.knownTx.Add(txEv.Tx.ID(), struct{}{})

			p.mu.RLock()
			func() {
				for lsn := range p.listeners {
					select {
					case lsn <- txEv.Tx:
					case <-done:
						return
					default: // non-blocking broadcast, a slow subscriber misses the tx
					}
				}
			}()
			p.mu.RUnlock()
		case <-done:
			return
		}
	}
}
