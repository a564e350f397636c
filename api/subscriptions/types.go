// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

// EntryMessage is pushed once per committed ledger entry.
type EntryMessage struct {
	Seq      uint64         `json:"seq"`
	Time     uint64         `json:"time"`
	TxID     pledge.Bytes32 `json:"txID"`
	TxOrigin pledge.Pubkey  `json:"txOrigin"`
	Reverted bool           `json:"reverted"`
}

func convertEntry(entry *ledger.Entry) *EntryMessage {
	return &EntryMessage{
		Seq:      entry.Seq,
		Time:     entry.Time,
		TxID:     entry.Tx.ID(),
		TxOrigin: entry.Tx.Origin(),
		Reverted: entry.Receipt.Reverted,
	}
}

// LogMeta points a pushed transfer back to its ledger entry.
type LogMeta struct {
	Seq      uint64         `json:"seq"`
	Time     uint64         `json:"time"`
	TxID     pledge.Bytes32 `json:"txID"`
	TxOrigin pledge.Pubkey  `json:"txOrigin"`
}

type TransferMessage struct {
	Sender    pledge.Pubkey `json:"sender"`
	Recipient pledge.Pubkey `json:"recipient"`
	Amount    uint64        `json:"amount"`
	Meta      LogMeta       `json:"meta"`
}

func convertTransfer(entry *ledger.Entry, transfer *tx.Transfer) *TransferMessage {
	return &TransferMessage{
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		Meta: LogMeta{
			Seq:      entry.Seq,
			Time:     entry.Time,
			TxID:     entry.Tx.ID(),
			TxOrigin: entry.Tx.Origin(),
		},
	}
}

// PendingTxIDMessage is pushed when a transaction enters the pool.
type PendingTxIDMessage struct {
	ID pledge.Bytes32 `json:"id"`
}

// TransferFilter contains options for transfer filtering. Nil fields
// match anything.
type TransferFilter struct {
	TxOrigin  *pledge.Pubkey // who sent the transaction
	Sender    *pledge.Pubkey // who was debited
	Recipient *pledge.Pubkey // who was credited
}

func (tf *TransferFilter) match(transfer *tx.Transfer, origin pledge.Pubkey) bool {
	if (tf.TxOrigin != nil) && (*tf.TxOrigin != origin) {
		return false
	}

	if (tf.Sender != nil) && (*tf.Sender != transfer.Sender) {
		return false
	}

	if (tf.Recipient != nil) && (*tf.Recipient != transfer.Recipient) {
		return false
	}
	return true
}
