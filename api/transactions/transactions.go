// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/api/restutil"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/txpool"
)

type Transactions struct {
	ldgr *ledger.Ledger
	pool *txpool.TxPool
}

func New(ldgr *ledger.Ledger, pool *txpool.TxPool) *Transactions {
	return &Transactions{
		ldgr,
		pool,
	}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var rawTx RawTx
	if err := restutil.ParseJSON(req.Body, &rawTx); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := rawTx.decode()
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "raw"))
	}

	if err := t.pool.Add(trx); err != nil {
		if txpool.IsBadTx(err) || txpool.IsErrTooLarge(err) || txpool.IsErrExpired(err) || txpool.IsErrKnownTx(err) {
			return restutil.BadRequest(err)
		}
		if txpool.IsTxRejected(err) {
			return restutil.Forbidden(err)
		}
		return err
	}
	return restutil.WriteJSON(w, &SendTxResult{ID: trx.ID()})
}

func (t *Transactions) handleGetTransactionByID(w http.ResponseWriter, req *http.Request) error {
	id, err := pledge.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "id"))
	}
	raw, err := boolQuery(req, "raw")
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "raw"))
	}
	pending, err := boolQuery(req, "pending")
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "pending"))
	}

	entry, err := t.ldgr.GetEntry(id)
	if err != nil {
		if !t.ldgr.IsNotFound(err) {
			return err
		}
		if pending {
			if trx := t.pool.Get(id); trx != nil {
				if raw {
					return writeRawTransaction(w, trx, nil)
				}
				return restutil.WriteJSON(w, convertTransaction(trx, nil))
			}
		}
		return restutil.WriteJSON(w, nil)
	}
	if raw {
		return writeRawTransaction(w, entry.Tx, entry)
	}
	return restutil.WriteJSON(w, convertTransaction(entry.Tx, entry))
}

func (t *Transactions) handleGetTransactionReceiptByID(w http.ResponseWriter, req *http.Request) error {
	id, err := pledge.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "id"))
	}
	entry, err := t.ldgr.GetEntry(id)
	if err != nil {
		if !t.ldgr.IsNotFound(err) {
			return err
		}
		return restutil.WriteJSON(w, nil)
	}
	return restutil.WriteJSON(w, convertReceipt(entry))
}

func boolQuery(req *http.Request, name string) (bool, error) {
	v := req.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("transactions_send_tx").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("transactions_get_tx").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetTransactionByID))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("transactions_get_receipt").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetTransactionReceiptByID))
}
