// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pledgechain/pledge/kv"
	"github.com/pledgechain/pledge/pledge"
)

const (
	propBucket  = kv.Bucket("l/p") // ledger properties
	entryBucket = kv.Bucket("l/e") // entries keyed by tx id
	indexBucket = kv.Bucket("l/i") // tx ids keyed by sequence number
)

var (
	genesisIDKey = []byte("genesis-id")
	headSeqKey   = []byte("head-seq")
)

func saveRLP(w kv.Putter, key []byte, val interface{}) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val interface{}) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func encodeSeq(seq uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return b[:]
}

func decodeSeq(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

func saveEntry(w kv.Putter, entry *Entry) error {
	id := entry.Tx.ID()
	if err := saveRLP(entryBucket.NewPutter(w), id[:], entry); err != nil {
		return err
	}
	return indexBucket.NewPutter(w).Put(encodeSeq(entry.Seq), id[:])
}

func loadEntry(r kv.Getter, id pledge.Bytes32) (*Entry, error) {
	var entry Entry
	if err := loadRLP(entryBucket.NewGetter(r), id[:], &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func saveHeadSeq(w kv.Putter, seq uint64) error {
	return propBucket.NewPutter(w).Put(headSeqKey, encodeSeq(seq))
}
