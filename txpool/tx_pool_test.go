// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"crypto/ed25519"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/lvldb"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

const (
	LIMIT             = 10
	LIMIT_PER_ACCOUNT = 2
)

var genesisID = pledge.Blake2b([]byte("txpool test ledger"))

func keypair(tag string) (pledge.Pubkey, ed25519.PrivateKey) {
	seed := pledge.Blake2b([]byte(tag))
	priv := ed25519.NewKeyFromSeed(seed.Bytes())
	return pledge.BytesToPubkey(priv.Public().(ed25519.PublicKey)), priv
}

func newPool(limit int, limitPerAccount int) (*TxPool, *ledger.Ledger) {
	db, _ := lvldb.NewMem()
	ldgr, _ := ledger.NewLedger(db, genesisID)
	return New(ldgr, Options{
		Limit:           limit,
		LimitPerAccount: limitPerAccount,
		MaxLifetime:     time.Hour,
	}), ldgr
}

func newTx(expiration uint64, nonce uint64, key ed25519.PrivateKey) *tx.Transaction {
	origin := pledge.BytesToPubkey(key.Public().(ed25519.PublicKey))
	trx := tx.NewBuilder().
		GenesisRef(genesisID).
		Expiration(expiration).
		Nonce(nonce).
		Program(pledge.Pubkey{}).
		Account(origin, true, true).
		Data([]byte{1}).
		Build()
	return tx.MustSign(trx, key)
}

func TestTxObjMap(t *testing.T) {
	_, key1 := keypair("map1")
	_, key2 := keypair("map2")

	tx1 := newTx(0, 1, key1)
	tx2 := newTx(0, 2, key1)
	tx3 := newTx(0, 1, key2)

	txObj1, _ := resolveTx(tx1, genesisID)
	txObj2, _ := resolveTx(tx2, genesisID)
	txObj3, _ := resolveTx(tx3, genesisID)

	m := newTxObjectMap()
	assert.Zero(t, m.Len())

	assert.Nil(t, m.Add(txObj1, 1))
	assert.Nil(t, m.Add(txObj1, 1), "should no error if exists")
	assert.Equal(t, 1, m.Len())

	assert.Equal(t, errors.New("account quota exceeded"), m.Add(txObj2, 1))
	assert.Equal(t, 1, m.Len())

	assert.Nil(t, m.Add(txObj3, 1))
	assert.Equal(t, 2, m.Len())

	assert.True(t, m.Contains(tx1.ID()))
	assert.False(t, m.Contains(tx2.ID()))
	assert.True(t, m.Contains(tx3.ID()))

	assert.True(t, m.Remove(tx1.ID()))
	assert.False(t, m.Contains(tx1.ID()))
	assert.False(t, m.Remove(tx2.ID()))

	assert.Equal(t, []*txObject{txObj3}, m.ToTxObjects())
	assert.Equal(t, tx.Transactions{tx3}, m.ToTxs())
}

func TestPoolAdd(t *testing.T) {
	pool, _ := newPool(LIMIT, LIMIT_PER_ACCOUNT)
	defer pool.Close()

	_, key := keypair("add")
	trx := newTx(0, 1, key)

	assert.Nil(t, pool.Add(trx))
	assert.Equal(t, 1, pool.Len())

	// adding twice is not an error
	assert.Nil(t, pool.Add(trx))
	assert.Equal(t, 1, pool.Len())

	got := pool.Get(trx.ID())
	assert.Equal(t, trx.ID(), got.ID())
	assert.Nil(t, pool.Get(newTx(0, 9, key).ID()))

	dumped := pool.Dump()
	assert.Len(t, dumped, 1)
	assert.Equal(t, trx.ID(), dumped[0].ID())

	assert.True(t, pool.Remove(trx.ID()))
	assert.False(t, pool.Remove(trx.ID()))
	assert.Zero(t, pool.Len())
	assert.Nil(t, pool.Get(trx.ID()))
}

func TestPoolAddRejects(t *testing.T) {
	pool, ldgr := newPool(LIMIT, LIMIT_PER_ACCOUNT)
	defer pool.Close()

	_, key := keypair("rejects")

	// oversized
	huge := tx.MustSign(tx.NewBuilder().
		GenesisRef(genesisID).
		Program(pledge.Pubkey{}).
		Account(pledge.BytesToPubkey(key.Public().(ed25519.PublicKey)), true, true).
		Data(make([]byte, pledge.MaxTxSize)).
		Build(), key)
	assert.True(t, IsErrTooLarge(pool.Add(huge)))

	// wrong ledger
	stranger := tx.MustSign(tx.NewBuilder().
		GenesisRef(pledge.Blake2b([]byte("another ledger"))).
		Program(pledge.Pubkey{}).
		Account(pledge.BytesToPubkey(key.Public().(ed25519.PublicKey)), true, true).
		Data([]byte{1}).
		Build(), key)
	assert.True(t, IsBadTx(pool.Add(stranger)))

	// mangled signature
	forged := newTx(0, 2, key).WithSignatures([][]byte{make([]byte, ed25519.SignatureSize)})
	assert.True(t, IsBadTx(pool.Add(forged)))

	// already settled on the ledger
	settled := newTx(0, 3, key)
	_, err := ldgr.Commit(settled, &tx.Receipt{}, 1735689601)
	assert.Nil(t, err)
	assert.True(t, IsErrKnownTx(pool.Add(settled)))

	// expired against the current head
	assert.True(t, IsErrExpired(pool.Add(newTx(1, 4, key))))

	// expiration claiming more than the allowed window ahead
	farAhead := newTx(ldgr.HeadSeq()+pledge.TxMaxExpiration+1, 8, key)
	assert.True(t, IsBadTx(pool.Add(farAhead)))

	// per account quota
	assert.Nil(t, pool.Add(newTx(0, 5, key)))
	assert.Nil(t, pool.Add(newTx(0, 6, key)))
	err = pool.Add(newTx(0, 7, key))
	assert.True(t, IsTxRejected(err))
	assert.EqualError(t, err, "tx rejected: account quota exceeded")
}

func TestPoolWash(t *testing.T) {
	pool, ldgr := newPool(LIMIT, LIMIT_PER_ACCOUNT)
	defer pool.Close()

	_, key1 := keypair("wash1")
	_, key2 := keypair("wash2")
	_, key3 := keypair("wash3")

	tx1 := newTx(0, 1, key1)
	tx2 := newTx(0, 1, key2)
	tx3 := newTx(0, 1, key3)
	assert.Nil(t, pool.Add(tx1))
	assert.Nil(t, pool.Add(tx2))
	assert.Nil(t, pool.Add(tx3))

	executables, removed, err := pool.wash(ldgr.HeadSeq())
	assert.Nil(t, err)
	assert.Zero(t, removed)
	// first come first served
	assert.Equal(t, tx.Transactions{tx1, tx2, tx3}, executables)

	// settling a tx washes it out
	_, err = ldgr.Commit(tx2, &tx.Receipt{}, 1735689601)
	assert.Nil(t, err)
	executables, removed, err = pool.wash(ldgr.HeadSeq())
	assert.Nil(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, tx.Transactions{tx1, tx3}, executables)
	assert.Equal(t, 2, pool.Len())
}

func TestPoolLimit(t *testing.T) {
	pool, ldgr := newPool(5, LIMIT)
	defer pool.Close()

	_, key := keypair("limit")
	var txs tx.Transactions
	for i := 0; i < 6; i++ {
		trx := newTx(0, uint64(i), key)
		assert.Nil(t, pool.Add(trx))
		txs = append(txs, trx)
	}

	// 120% of the limit is the hard cap
	err := pool.Add(newTx(0, 100, key))
	assert.True(t, IsTxRejected(err))
	assert.EqualError(t, err, "tx rejected: pool is full")

	// wash trims back to the limit, keeping the oldest
	executables, removed, err := pool.wash(ldgr.HeadSeq())
	assert.Nil(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, txs[:5], executables)
	assert.Equal(t, 5, pool.Len())
}

func TestPoolWashLifetime(t *testing.T) {
	db, _ := lvldb.NewMem()
	ldgr, _ := ledger.NewLedger(db, genesisID)
	pool := New(ldgr, Options{
		Limit:           LIMIT,
		LimitPerAccount: LIMIT_PER_ACCOUNT,
		MaxLifetime:     time.Millisecond,
	})
	defer pool.Close()

	_, key := keypair("lifetime")
	assert.Nil(t, pool.Add(newTx(0, 1, key)))
	time.Sleep(time.Millisecond * 10)

	executables, removed, err := pool.wash(ldgr.HeadSeq())
	assert.Nil(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, executables, 0)
	assert.Zero(t, pool.Len())
}

func TestSubscribeTxEvent(t *testing.T) {
	pool, _ := newPool(LIMIT, LIMIT_PER_ACCOUNT)
	defer pool.Close()

	ch := make(chan *TxEvent, 1)
	sub := pool.SubscribeTxEvent(ch)
	defer sub.Unsubscribe()

	_, key := keypair("subscribe")
	trx := newTx(0, 1, key)
	assert.Nil(t, pool.Add(trx))

	select {
	case ev := <-ch:
		assert.Equal(t, trx.ID(), ev.Tx.ID())
	case <-time.After(time.Second * 5):
		t.Fatal("timeout waiting for tx event")
	}
}

func TestExecutables(t *testing.T) {
	pool, _ := newPool(LIMIT, LIMIT_PER_ACCOUNT)
	defer pool.Close()

	_, key1 := keypair("exec1")
	_, key2 := keypair("exec2")
	tx1 := newTx(0, 1, key1)
	tx2 := newTx(0, 1, key2)
	assert.Nil(t, pool.Add(tx1))
	assert.Nil(t, pool.Add(tx2))

	// housekeeping publishes executables shortly after the add
	deadline := time.Now().Add(time.Second * 5)
	for {
		if executables := pool.Executables(); len(executables) == 2 {
			assert.Equal(t, tx.Transactions{tx1, tx2}, executables)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for executables")
		}
		time.Sleep(time.Millisecond * 50)
	}
}
