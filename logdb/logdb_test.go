// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

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

func seedDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(db.Close)

	// seq 1: alice pays bob twice in one tx
	// seq 2: bob pays carol
	// seq 3: carol pays alice the maximum representable amount
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
			{Sender: carol, Recipient: alice, Amount: math.MaxUint64},
		}).
		Commit()
	assert.Nil(t, err)
	return db
}

func TestFilterTransfersAll(t *testing.T) {
	db := seedDB(t)

	all, err := db.FilterTransfers(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, uint64(10), all[0].Amount)
	assert.Equal(t, uint32(0), all[0].Index)
	assert.Equal(t, uint32(1), all[1].Index)
	assert.Equal(t, txID(1), all[0].TxID)
	assert.Equal(t, alice, all[0].TxOrigin)
	// the widest amount survives the round trip
	assert.Equal(t, uint64(math.MaxUint64), all[3].Amount)
}

func TestFilterTransfersRange(t *testing.T) {
	db := seedDB(t)
	ctx := context.Background()

	got, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		Range: &logdb.Range{Unit: logdb.Seq, From: 2, To: 3},
	})
	assert.Nil(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].Seq)

	got, err = db.FilterTransfers(ctx, &logdb.TransferFilter{
		Range: &logdb.Range{Unit: logdb.Time, From: 0, To: 1500},
	})
	assert.Nil(t, err)
	assert.Len(t, got, 2)
}

func TestFilterTransfersCriteria(t *testing.T) {
	db := seedDB(t)
	ctx := context.Background()

	got, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &alice}},
	})
	assert.Nil(t, err)
	assert.Len(t, got, 2)

	// either side of bob
	got, err = db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &bob}, {Recipient: &bob}},
	})
	assert.Nil(t, err)
	assert.Len(t, got, 3)

	got, err = db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{TxOrigin: &carol, Recipient: &alice}},
	})
	assert.Nil(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, uint64(3), got[0].Seq)

	id := txID(2)
	got, err = db.FilterTransfers(ctx, &logdb.TransferFilter{TxID: &id})
	assert.Nil(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, carol, got[0].Recipient)
}

func TestFilterTransfersOrderAndOptions(t *testing.T) {
	db := seedDB(t)
	ctx := context.Background()

	got, err := db.FilterTransfers(ctx, &logdb.TransferFilter{Order: logdb.DESC})
	assert.Nil(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, uint64(3), got[0].Seq)
	assert.Equal(t, uint64(2), got[1].Seq)
	assert.Equal(t, uint32(1), got[2].Index)
	assert.Equal(t, uint64(10), got[3].Amount)

	got, err = db.FilterTransfers(ctx, &logdb.TransferFilter{
		Options: &logdb.Options{Offset: 1, Limit: 2},
	})
	assert.Nil(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, uint32(1), got[0].Index)
	assert.Equal(t, uint64(2), got[1].Seq)
}

func TestNewestSeqAndTruncate(t *testing.T) {
	db := seedDB(t)

	newest, err := db.NewestSeq()
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), newest)

	assert.Nil(t, db.Truncate(2))
	newest, err = db.NewestSeq()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), newest)

	all, err := db.FilterTransfers(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, all, 2)
}

func TestCommitIdempotent(t *testing.T) {
	db := seedDB(t)

	// re-running the same entry replaces rather than duplicates
	err := db.Prepare().
		ForTransaction(2, 2000, txID(2), bob).
		Insert(tx.Transfers{
			{Sender: bob, Recipient: carol, Amount: 30},
		}).
		Commit()
	assert.Nil(t, err)

	all, err := db.FilterTransfers(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, all, 4)
}
