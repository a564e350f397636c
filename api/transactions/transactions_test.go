// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/lvldb"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
	"github.com/pledgechain/pledge/txpool"
)

var genesisID = pledge.Blake2b([]byte("transactions test ledger"))

func keypair(tag string) (pledge.Pubkey, ed25519.PrivateKey) {
	seed := pledge.Blake2b([]byte(tag))
	priv := ed25519.NewKeyFromSeed(seed.Bytes())
	return pledge.BytesToPubkey(priv.Public().(ed25519.PublicKey)), priv
}

func newSignedTx(genesisRef pledge.Bytes32, nonce uint64, key ed25519.PrivateKey) *tx.Transaction {
	origin := pledge.BytesToPubkey(key.Public().(ed25519.PublicKey))
	trx := tx.NewBuilder().
		GenesisRef(genesisRef).
		Expiration(0).
		Nonce(nonce).
		Program(pledge.Pubkey{}).
		Account(origin, true, true).
		Data([]byte{1}).
		Build()
	return tx.MustSign(trx, key)
}

func rawTxBody(t *testing.T, trx *tx.Transaction) []byte {
	rlpTx, err := rlp.EncodeToBytes(trx)
	require.NoError(t, err)
	body, err := json.Marshal(RawTx{Raw: hexutil.Encode(rlpTx)})
	require.NoError(t, err)
	return body
}

func initTransactionServer(t *testing.T) (*ledger.Ledger, *txpool.TxPool, *httptest.Server) {
	db, _ := lvldb.NewMem()
	ldgr, err := ledger.NewLedger(db, genesisID)
	require.NoError(t, err)
	pool := txpool.New(ldgr, txpool.Options{Limit: 16, LimitPerAccount: 16, MaxLifetime: time.Hour})
	t.Cleanup(pool.Close)

	router := mux.NewRouter()
	New(ldgr, pool).Mount(router, "/transactions")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ldgr, pool, ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url)
	require.NoError(t, err)
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	return r, res.StatusCode
}

func httpPost(t *testing.T, url string, body []byte) ([]byte, int) {
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	return r, res.StatusCode
}

func TestSendTransaction(t *testing.T) {
	_, pool, ts := initTransactionServer(t)

	_, key := keypair("sender")
	trx := newSignedTx(genesisID, 1, key)

	res, code := httpPost(t, ts.URL+"/transactions", rawTxBody(t, trx))
	assert.Equal(t, http.StatusOK, code)

	var sent SendTxResult
	require.NoError(t, json.Unmarshal(res, &sent))
	assert.Equal(t, trx.ID(), sent.ID)
	assert.NotNil(t, pool.Get(trx.ID()))

	// resubmitting the same transaction is a bad request
	_, code = httpPost(t, ts.URL+"/transactions", rawTxBody(t, trx))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSendTransactionErrors(t *testing.T) {
	_, _, ts := initTransactionServer(t)

	tests := []struct {
		name string
		body []byte
	}{
		{"not json", []byte("{raw}")},
		{"unknown field", []byte(`{"rawtx": "0x00"}`)},
		{"missing hex prefix", []byte(`{"raw": "c0"}`)},
		{"not rlp", []byte(`{"raw": "0xdeadbeef"}`)},
	}
	for _, tt := range tests {
		_, code := httpPost(t, ts.URL+"/transactions", tt.body)
		assert.Equal(t, http.StatusBadRequest, code, tt.name)
	}

	// well-formed transaction bound to a different genesis
	_, key := keypair("stranger")
	trx := newSignedTx(pledge.Blake2b([]byte("other ledger")), 1, key)
	_, code := httpPost(t, ts.URL+"/transactions", rawTxBody(t, trx))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetPendingTransaction(t *testing.T) {
	_, pool, ts := initTransactionServer(t)

	origin, key := keypair("pending")
	trx := newSignedTx(genesisID, 1, key)
	require.NoError(t, pool.Add(trx))

	// not on the ledger yet, so a plain lookup misses
	res, code := httpGet(t, ts.URL+"/transactions/"+trx.ID().String())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", string(res))

	res, code = httpGet(t, ts.URL+"/transactions/"+trx.ID().String()+"?pending=true")
	assert.Equal(t, http.StatusOK, code)
	var rtx *Transaction
	require.NoError(t, json.Unmarshal(res, &rtx))
	require.NotNil(t, rtx)
	assert.Equal(t, trx.ID(), rtx.ID)
	assert.Equal(t, origin, rtx.Origin)
	assert.Nil(t, rtx.Meta)
}

func TestGetCommittedTransaction(t *testing.T) {
	ldgr, _, ts := initTransactionServer(t)

	origin, key := keypair("committed")
	recipient, _ := keypair("recipient")
	trx := newSignedTx(genesisID, 1, key)
	receipt := &tx.Receipt{
		Transfers: tx.Transfers{{Sender: origin, Recipient: recipient, Amount: 7}},
	}
	entry, err := ldgr.Commit(trx, receipt, 1000)
	require.NoError(t, err)

	res, code := httpGet(t, ts.URL+"/transactions/"+trx.ID().String())
	assert.Equal(t, http.StatusOK, code)
	var rtx *Transaction
	require.NoError(t, json.Unmarshal(res, &rtx))
	require.NotNil(t, rtx)
	assert.Equal(t, trx.ID(), rtx.ID)
	assert.Equal(t, genesisID, rtx.GenesisRef)
	assert.Equal(t, origin, rtx.Origin)
	assert.Equal(t, trx.Size(), rtx.Size)
	require.NotNil(t, rtx.Meta)
	assert.Equal(t, entry.Seq, rtx.Meta.Seq)
	assert.Equal(t, entry.Time, rtx.Meta.Time)

	// raw form round-trips the wire encoding
	res, code = httpGet(t, ts.URL+"/transactions/"+trx.ID().String()+"?raw=true")
	assert.Equal(t, http.StatusOK, code)
	var raw RawTransaction
	require.NoError(t, json.Unmarshal(res, &raw))
	rlpTx, err := rlp.EncodeToBytes(trx)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(rlpTx), raw.Raw)
	require.NotNil(t, raw.Meta)
	assert.Equal(t, entry.Seq, raw.Meta.Seq)

	res, code = httpGet(t, ts.URL+"/transactions/"+trx.ID().String()+"/receipt")
	assert.Equal(t, http.StatusOK, code)
	var rec *Receipt
	require.NoError(t, json.Unmarshal(res, &rec))
	require.NotNil(t, rec)
	assert.False(t, rec.Reverted)
	require.Len(t, rec.Transfers, 1)
	assert.Equal(t, origin, rec.Transfers[0].Sender)
	assert.Equal(t, recipient, rec.Transfers[0].Recipient)
	assert.Equal(t, uint64(7), rec.Transfers[0].Amount)
	assert.Equal(t, trx.ID(), rec.Meta.TxID)
	assert.Equal(t, origin, rec.Meta.TxOrigin)
	assert.Equal(t, entry.Seq, rec.Meta.Seq)
}

func TestGetUnknownTransaction(t *testing.T) {
	_, _, ts := initTransactionServer(t)

	id := pledge.Blake2b([]byte("no such tx"))
	res, code := httpGet(t, ts.URL+"/transactions/"+id.String())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", string(res))

	res, code = httpGet(t, ts.URL+"/transactions/"+id.String()+"/receipt")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", string(res))

	_, code = httpGet(t, ts.URL+"/transactions/not-an-id")
	assert.Equal(t, http.StatusBadRequest, code)
}
