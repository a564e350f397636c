// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/rent"
)

// Account for marshal account. Data is base64 encoded; a never-touched key
// yields the zero account.
type Account struct {
	Lamports    uint64        `json:"lamports"`
	Owner       pledge.Pubkey `json:"owner"`
	Data        []byte        `json:"data"`
	RentMinimum uint64        `json:"rentMinimum"`
}

func convertAccount(lamports uint64, owner pledge.Pubkey, data []byte) *Account {
	return &Account{
		Lamports:    lamports,
		Owner:       owner,
		Data:        data,
		RentMinimum: rent.MinimumBalance(uint64(len(data))),
	}
}
