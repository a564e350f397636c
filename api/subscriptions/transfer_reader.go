// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/pledgechain/pledge/ledger"
)

type transferReader struct {
	filter      *TransferFilter
	entryReader ledger.EntryReader
}

func newTransferReader(ldgr *ledger.Ledger, position uint64, filter *TransferFilter) *transferReader {
	return &transferReader{
		filter:      filter,
		entryReader: ldgr.NewEntryReader(position),
	}
}

func (tr *transferReader) Read() ([]interface{}, bool, error) {
	entries, err := tr.entryReader.Read()
	if err != nil {
		return nil, false, err
	}
	var msgs []interface{}
	for _, entry := range entries {
		origin := entry.Tx.Origin()
		for _, transfer := range entry.Receipt.Transfers {
			if tr.filter.match(transfer, origin) {
				msgs = append(msgs, convertTransfer(entry, transfer))
			}
		}
	}
	return msgs, len(entries) > 0, nil
}
