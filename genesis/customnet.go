// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	LaunchTime uint64    `json:"launchTime"`
	ExtraData  string    `json:"extraData"`
	Accounts   []Account `json:"accounts"`
}

// Account is an account allocated at launch. Owner and Data allow seeding
// program-owned record accounts alongside plain balances.
type Account struct {
	Pubkey   pledge.Pubkey  `json:"pubkey"`
	Lamports uint64         `json:"lamports"`
	Owner    *pledge.Pubkey `json:"owner,omitempty"`
	Data     string         `json:"data,omitempty"`
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if len(gen.Accounts) == 0 {
		return nil, errors.New("at least one account must be allocated")
	}
	var extra [28]byte
	if len(gen.ExtraData) > len(extra) {
		return nil, fmt.Errorf("extraData must fit in %d bytes", len(extra))
	}
	copy(extra[:], gen.ExtraData)

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		ExtraData(extra).
		State(func(state *state.State) error {
			for _, a := range gen.Accounts {
				if a.Lamports == 0 && len(a.Data) == 0 {
					return fmt.Errorf("%s: lamports must be set", a.Pubkey)
				}
				if err := state.SetLamports(a.Pubkey, a.Lamports); err != nil {
					return err
				}
				if a.Owner != nil {
					if err := state.SetOwner(a.Pubkey, *a.Owner); err != nil {
						return err
					}
				}
				if len(a.Data) > 0 {
					data, err := hexutil.Decode(a.Data)
					if err != nil {
						return fmt.Errorf("%s: invalid account data", a.Pubkey)
					}
					if uint64(len(data)) > pledge.MaxAccountDataSize {
						return fmt.Errorf("%s: account data too large", a.Pubkey)
					}
					if err := state.SetData(a.Pubkey, data); err != nil {
						return err
					}
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, "customnet"}, nil
}
