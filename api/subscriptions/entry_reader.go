// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/pledgechain/pledge/ledger"
)

type entryReader struct {
	entryReader ledger.EntryReader
}

func newEntryReader(ldgr *ledger.Ledger, position uint64) *entryReader {
	return &entryReader{
		entryReader: ldgr.NewEntryReader(position),
	}
}

func (er *entryReader) Read() ([]interface{}, bool, error) {
	entries, err := er.entryReader.Read()
	if err != nil {
		return nil, false, err
	}
	var msgs []interface{}
	for _, entry := range entries {
		msgs = append(msgs, convertEntry(entry))
	}
	return msgs, len(entries) > 0, nil
}
