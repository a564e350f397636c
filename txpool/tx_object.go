// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/runtime"
	"github.com/pledgechain/pledge/tx"
)

type txObject struct {
	*tx.Transaction
	resolved *runtime.ResolvedTransaction

	timeAdded int64
}

func resolveTx(trx *tx.Transaction, genesisRef pledge.Bytes32) (*txObject, error) {
	resolved, err := runtime.ResolveTransaction(trx, genesisRef)
	if err != nil {
		return nil, err
	}

	return &txObject{
		Transaction: trx,
		resolved:    resolved,
		timeAdded:   time.Now().UnixNano(),
	}, nil
}

func (o *txObject) Origin() pledge.Pubkey {
	return o.resolved.Origin()
}

// Executable tests whether the tx is ready to be included in the entry at nextSeq.
func (o *txObject) Executable(ldgr *ledger.Ledger, nextSeq uint64) error {
	if exp := o.Expiration(); exp != 0 && exp < nextSeq {
		return errors.New("expired")
	}

	if has, err := ldgr.HasTransaction(o.ID()); err != nil {
		return err
	} else if has {
		return errors.New("known tx")
	}
	return nil
}

func sortTxObjsByTimeAddedAsc(txObjs []*txObject) {
	sort.Slice(txObjs, func(i, j int) bool {
		return txObjs[i].timeAdded < txObjs[j].timeAdded
	})
}
