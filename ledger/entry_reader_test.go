// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pledgechain/pledge/tx"
)

func TestEntryReader(t *testing.T) {
	l, _ := openLedger(t)

	for nonce := uint64(1); nonce <= 3; nonce++ {
		_, err := l.Commit(newTx(nonce), &tx.Receipt{}, 1000+nonce)
		assert.Nil(t, err)
	}

	reader := l.NewEntryReader(0)
	for seq := uint64(1); seq <= 3; seq++ {
		entries, err := reader.Read()
		assert.Nil(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, seq, entries[0].Seq)
	}

	// caught up with the head
	entries, err := reader.Read()
	assert.Nil(t, err)
	assert.Len(t, entries, 0)

	// a new commit makes the next Read return it
	_, err = l.Commit(newTx(4), &tx.Receipt{}, 1004)
	assert.Nil(t, err)
	entries, err = reader.Read()
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint64(4), entries[0].Seq)
}

func TestEntryReaderFromPosition(t *testing.T) {
	l, _ := openLedger(t)

	for nonce := uint64(1); nonce <= 3; nonce++ {
		_, err := l.Commit(newTx(nonce), &tx.Receipt{}, 1000+nonce)
		assert.Nil(t, err)
	}

	reader := l.NewEntryReader(2)
	entries, err := reader.Read()
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint64(3), entries[0].Seq)

	entries, err = reader.Read()
	assert.Nil(t, err)
	assert.Len(t, entries, 0)
}
