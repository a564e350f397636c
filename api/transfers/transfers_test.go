// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pledgechain/pledge/logdb"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

var (
	alice = pledge.BytesToPubkey([]byte("alice"))
	bob   = pledge.BytesToPubkey([]byte("bob"))
	carol = pledge.BytesToPubkey([]byte("carol"))
)

func txID(n byte) pledge.Bytes32 {
	return pledge.Blake2b([]byte{n})
}

func uintPtr(n uint64) *uint64 {
	return &n
}

// initTransfersServer seeds four transfers over three ledger entries.
func initTransfersServer(t *testing.T, limit uint64) *httptest.Server {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	err = db.Prepare().
		ForTransaction(1, 1000, txID(1), alice).
		Insert(tx.Transfers{
			{Sender: alice, Recipient: bob, Amount: 10},
			{Sender: alice, Recipient: bob, Amount: 20},
		}).
		ForTransaction(2, 2000, txID(2), bob).
		Insert(tx.Transfers{
			{Sender: bob, Recipient: carol, Amount: 30},
		}).
		ForTransaction(3, 3000, txID(3), carol).
		Insert(tx.Transfers{
			{Sender: carol, Recipient: alice, Amount: 40},
		}).
		Commit()
	require.NoError(t, err)

	router := mux.NewRouter()
	New(db, limit).Mount(router, "/logs/transfer")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpPost(t *testing.T, url string, body []byte) ([]byte, int) {
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	return r, res.StatusCode
}

func filterTransfers(t *testing.T, ts *httptest.Server, filter *TransferFilter) ([]*FilteredTransfer, int) {
	body, err := json.Marshal(filter)
	require.NoError(t, err)
	res, code := httpPost(t, ts.URL+"/logs/transfer", body)
	if code != http.StatusOK {
		return nil, code
	}
	var tLogs []*FilteredTransfer
	require.NoError(t, json.Unmarshal(res, &tLogs))
	return tLogs, code
}

func TestFilterAllTransfers(t *testing.T) {
	ts := initTransfersServer(t, 10)

	tLogs, code := filterTransfers(t, ts, &TransferFilter{})
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, tLogs, 4)

	first := tLogs[0]
	assert.Equal(t, alice, first.Sender)
	assert.Equal(t, bob, first.Recipient)
	assert.Equal(t, uint64(10), first.Amount)
	assert.Equal(t, uint64(1), first.Meta.Seq)
	assert.Equal(t, uint64(1000), first.Meta.Time)
	assert.Equal(t, txID(1), first.Meta.TxID)
	assert.Equal(t, alice, first.Meta.TxOrigin)
}

func TestFilterTransfersByCriteria(t *testing.T) {
	ts := initTransfersServer(t, 10)

	tLogs, _ := filterTransfers(t, ts, &TransferFilter{
		CriteriaSet: []*TransferCriteria{{Sender: &carol}},
	})
	require.Len(t, tLogs, 1)
	assert.Equal(t, uint64(40), tLogs[0].Amount)

	// criteria are ORed
	tLogs, _ = filterTransfers(t, ts, &TransferFilter{
		CriteriaSet: []*TransferCriteria{
			{Sender: &carol},
			{TxOrigin: &bob},
		},
	})
	assert.Len(t, tLogs, 2)

	id := txID(2)
	tLogs, _ = filterTransfers(t, ts, &TransferFilter{TxID: &id})
	require.Len(t, tLogs, 1)
	assert.Equal(t, uint64(30), tLogs[0].Amount)
}

func TestFilterTransfersRangeAndPaging(t *testing.T) {
	ts := initTransfersServer(t, 10)

	tLogs, _ := filterTransfers(t, ts, &TransferFilter{
		Range: &Range{Unit: logdb.Seq, From: uintPtr(2), To: uintPtr(3)},
	})
	assert.Len(t, tLogs, 2)

	// open-ended time range
	tLogs, _ = filterTransfers(t, ts, &TransferFilter{
		Range: &Range{Unit: logdb.Time, From: uintPtr(2000)},
	})
	assert.Len(t, tLogs, 2)

	tLogs, _ = filterTransfers(t, ts, &TransferFilter{Order: logdb.DESC})
	require.Len(t, tLogs, 4)
	assert.Equal(t, uint64(3), tLogs[0].Meta.Seq)

	tLogs, _ = filterTransfers(t, ts, &TransferFilter{
		Options: &Options{Offset: 1, Limit: 1},
	})
	require.Len(t, tLogs, 1)
	assert.Equal(t, uint64(20), tLogs[0].Amount)
}

func TestFilterTransfersLimits(t *testing.T) {
	ts := initTransfersServer(t, 3)

	// four matching rows and no explicit paging
	_, code := filterTransfers(t, ts, &TransferFilter{})
	assert.Equal(t, http.StatusForbidden, code)

	tLogs, code := filterTransfers(t, ts, &TransferFilter{
		Options: &Options{Limit: 3},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, tLogs, 3)

	_, code = filterTransfers(t, ts, &TransferFilter{
		Options: &Options{Limit: 4},
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestFilterTransfersValidation(t *testing.T) {
	ts := initTransfersServer(t, 10)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown field", `{"txid2": "0x00"}`},
		{"null criterion", `{"criteriaSet": [null]}`},
		{"bad range unit", `{"range": {"unit": "block"}}`},
		{"inverted range", `{"range": {"from": 3, "to": 1}}`},
		{"offset overflow", `{"options": {"offset": 9223372036854775808}}`},
	}
	for _, tt := range tests {
		_, code := httpPost(t, ts.URL+"/logs/transfer", []byte(tt.body))
		assert.Equal(t, http.StatusBadRequest, code, tt.name)
	}
}
