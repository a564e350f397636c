// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"fmt"
	"math"

	"github.com/pledgechain/pledge/logdb"
	"github.com/pledgechain/pledge/pledge"
)

// TransferCriteria selects transfers by the parties involved. Nil fields
// match anything.
type TransferCriteria struct {
	TxOrigin  *pledge.Pubkey `json:"txOrigin,omitempty"`
	Sender    *pledge.Pubkey `json:"sender,omitempty"`
	Recipient *pledge.Pubkey `json:"recipient,omitempty"`
}

type Range struct {
	Unit logdb.RangeType `json:"unit,omitempty"`
	From *uint64         `json:"from,omitempty"`
	To   *uint64         `json:"to,omitempty"`
}

func (r *Range) validate() error {
	if r == nil {
		return nil
	}
	if r.Unit != "" && r.Unit != logdb.Seq && r.Unit != logdb.Time {
		return fmt.Errorf("filter.Range.Unit must be either 'seq' or 'time', got '%s'", r.Unit)
	}
	if r.From != nil && r.To != nil && *r.From > *r.To {
		return fmt.Errorf("filter.Range.To must be greater than or equal to filter.Range.From")
	}
	return nil
}

// convertRange fills in the open ends, nil From means the genesis and nil
// To means forever.
func convertRange(r *Range) *logdb.Range {
	if r == nil {
		return nil
	}
	converted := &logdb.Range{
		Unit: r.Unit,
		To:   math.MaxUint64,
	}
	if r.From != nil {
		converted.From = *r.From
	}
	if r.To != nil {
		converted.To = *r.To
	}
	return converted
}

type Options struct {
	Offset uint64 `json:"offset,omitempty"`
	Limit  uint64 `json:"limit,omitempty"`
}

type TransferFilter struct {
	TxID        *pledge.Bytes32     `json:"txID,omitempty"`
	CriteriaSet []*TransferCriteria `json:"criteriaSet,omitempty"`
	Range       *Range              `json:"range,omitempty"`
	Options     *Options            `json:"options,omitempty"`
	Order       logdb.Order         `json:"order,omitempty"`
}

// LogMeta points a filtered transfer back to its ledger entry.
type LogMeta struct {
	Seq      uint64         `json:"seq"`
	Time     uint64         `json:"time"`
	TxID     pledge.Bytes32 `json:"txID"`
	TxOrigin pledge.Pubkey  `json:"txOrigin"`
}

type FilteredTransfer struct {
	Sender    pledge.Pubkey `json:"sender"`
	Recipient pledge.Pubkey `json:"recipient"`
	Amount    uint64        `json:"amount"`
	Meta      LogMeta       `json:"meta"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		Meta: LogMeta{
			Seq:      transfer.Seq,
			Time:     transfer.Time,
			TxID:     transfer.TxID,
			TxOrigin: transfer.TxOrigin,
		},
	}
}
