// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/pledgechain/pledge/pledge"
)

// Transfer represents a lamport movement as stored in db.
type Transfer struct {
	Seq       uint64
	Index     uint32
	Time      uint64
	TxID      pledge.Bytes32
	TxOrigin  pledge.Pubkey
	Sender    pledge.Pubkey
	Recipient pledge.Pubkey
	Amount    uint64
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// TransferCriteria matches transfers by the parties involved. Nil fields
// match anything.
type TransferCriteria struct {
	TxOrigin  *pledge.Pubkey // who sent the transaction
	Sender    *pledge.Pubkey // who was debited
	Recipient *pledge.Pubkey // who was credited
}

// TransferFilter filter
type TransferFilter struct {
	TxID        *pledge.Bytes32
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
