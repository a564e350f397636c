// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pledgechain/pledge/api/restutil"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/txpool"
)

type Node struct {
	ldgr *ledger.Ledger
	pool *txpool.TxPool
}

func New(ldgr *ledger.Ledger, pool *txpool.TxPool) *Node {
	return &Node{
		ldgr,
		pool,
	}
}

// Status describes the node's view of the ledger.
type Status struct {
	GenesisID pledge.Bytes32 `json:"genesisID"`
	HeadSeq   uint64         `json:"headSeq"`
	HeadTime  uint64         `json:"headTime"`
	PoolSize  int            `json:"poolSize"`
}

func (n *Node) status() (*Status, error) {
	status := &Status{
		GenesisID: n.ldgr.GenesisID(),
		HeadSeq:   n.ldgr.HeadSeq(),
		PoolSize:  n.pool.Len(),
	}
	if status.HeadSeq > 0 {
		entry, err := n.ldgr.GetEntryBySeq(status.HeadSeq)
		if err != nil {
			return nil, err
		}
		status.HeadTime = entry.Time
	}
	return status, nil
}

func (n *Node) handleGetStatus(w http.ResponseWriter, req *http.Request) error {
	status, err := n.status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, status)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("node_get_status").
		HandlerFunc(restutil.WrapHandlerFunc(n.handleGetStatus))
}
