// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/api/admin/health"
	"github.com/pledgechain/pledge/co"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/log"
	"github.com/pledgechain/pledge/logdb"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
	"github.com/pledgechain/pledge/runtime"
	"github.com/pledgechain/pledge/state"
	"github.com/pledgechain/pledge/tx"
	"github.com/pledgechain/pledge/txpool"
)

var logger = log.WithContext("pkg", "node")

type Options struct {
	OnDemand bool
	Interval uint64
	SkipLogs bool
}

// Node is the standalone executor without p2p: it drains the pool, runs
// transactions through the runtime and commits account state, ledger entries
// and transfer logs. One transaction becomes one entry.
type Node struct {
	goes     co.Goes
	ldgr     *ledger.Ledger
	stater   *state.Stater
	pool     *txpool.TxPool
	logDB    *logdb.LogDB
	registry *program.Registry
	health   *health.Health
	options  Options
}

func New(
	ldgr *ledger.Ledger,
	stater *state.Stater,
	pool *txpool.TxPool,
	logDB *logdb.LogDB,
	registry *program.Registry,
	healthStatus *health.Health,
	options Options,
) *Node {
	if options.Interval == 0 {
		options.Interval = pledge.ExecInterval
	}
	return &Node{
		ldgr:     ldgr,
		stater:   stater,
		pool:     pool,
		logDB:    logDB,
		registry: registry,
		health:   healthStatus,
		options:  options,
	}
}

// Run executes the packing loops until ctx is done.
func (n *Node) Run(ctx context.Context) error {
	defer n.goes.Wait()

	n.goes.Go(func() { n.intervalLoop(ctx) })
	n.goes.Go(func() { n.watcherLoop(ctx) })
	n.goes.Go(func() { n.houseKeeping(ctx) })

	return nil
}

func (n *Node) intervalLoop(ctx context.Context) {
	if n.options.OnDemand {
		return
	}
	logger.Debug("enter interval loop")
	defer logger.Debug("leave interval loop")

	ticker := time.NewTicker(time.Duration(n.options.Interval) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval packing service......")
			return
		case <-ticker.C:
			n.packing()
		}
	}
}

func (n *Node) watcherLoop(ctx context.Context) {
	logger.Debug("enter watcher loop")
	defer logger.Debug("leave watcher loop")

	txEvCh := make(chan *txpool.TxEvent, 10)
	sub := n.pool.SubscribeTxEvent(txEvCh)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping watcher service......")
			return
		case ev := <-txEvCh:
			logger.Debug("new tx", "id", ev.Tx.ID().AbbrevString())
			if n.options.OnDemand {
				n.packing()
			}
		}
	}
}

// packing drains the executables and commits them one entry each.
func (n *Node) packing() {
	executables := n.pool.Executables()
	if len(executables) == 0 {
		return
	}

	startTime := mclock.Now()
	var stats entryStats

	for _, trx := range executables {
		if err := n.commitTransaction(trx, &stats); err != nil {
			logger.Error("failed to commit tx", "id", trx.ID(), "err", err)
		}
		n.pool.Remove(trx.ID())
	}

	if packed := stats.committed + stats.reverted; packed > 0 {
		elapsed := mclock.Now() - startTime
		metricPackingDuration().Observe(time.Duration(elapsed).Milliseconds())
		logger.Info("📦 new entries packed", stats.LogContext(n.ldgr.HeadSeq(), elapsed)...)
	}
}

func (n *Node) commitTransaction(trx *tx.Transaction, stats *entryStats) error {
	st := n.stater.NewState()
	rt := runtime.New(st, n.registry, n.ldgr.GenesisID(), n.ldgr.HeadSeq()+1)

	receipt, err := rt.ExecuteTransaction(trx)
	if err != nil {
		// not executable at all, gone without an entry
		logger.Debug("dropped tx", "id", trx.ID().AbbrevString(), "err", err)
		stats.UpdateDropped(1)
		metricTxDroppedCount().Add(1)
		return nil
	}

	stage, err := st.Stage()
	if err != nil {
		return errors.WithMessage(err, "stage")
	}
	if err := stage.Commit(); err != nil {
		return errors.WithMessage(err, "commit state")
	}

	entry, err := n.ldgr.Commit(trx, receipt, uint64(time.Now().Unix()))
	if err != nil {
		return errors.WithMessage(err, "commit entry")
	}

	if !n.options.SkipLogs {
		batch := n.logDB.Prepare()
		batch.ForTransaction(entry.Seq, entry.Time, trx.ID(), trx.Origin()).Insert(receipt.Transfers)
		if err := batch.Commit(); err != nil {
			return errors.WithMessage(err, "commit logs")
		}
	}

	n.health.NewBestEntry(entry.Seq)

	if receipt.Reverted {
		stats.UpdateReverted(1)
		metricEntryPackedCount().AddWithLabel(1, map[string]string{"status": "reverted"})
	} else {
		var amount uint64
		for _, transfer := range receipt.Transfers {
			amount += transfer.Amount
		}
		stats.UpdateCommitted(1, amount)
		metricEntryPackedCount().AddWithLabel(1, map[string]string{"status": "committed"})
		metricTransferredAmount().Add(int64(amount))
	}
	return nil
}
