// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaigns

import (
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/record"
)

// Campaign is one decoded campaign record together with the account
// holding it. Lamports is the full account balance, rent floor included.
type Campaign struct {
	Key           pledge.Pubkey `json:"key"`
	Admin         pledge.Pubkey `json:"admin"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	ImageLink     string        `json:"imageLink"`
	AmountDonated uint64        `json:"amountDonated"`
	Lamports      uint64        `json:"lamports"`
}

func convertCampaign(key pledge.Pubkey, lamports uint64, rec *record.Campaign) *Campaign {
	return &Campaign{
		Key:           key,
		Admin:         rec.Admin,
		Name:          rec.Name,
		Description:   rec.Description,
		ImageLink:     rec.ImageLink,
		AmountDonated: rec.AmountDonated,
		Lamports:      lamports,
	}
}
