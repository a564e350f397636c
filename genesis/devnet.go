// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ed25519"
	"encoding/hex"
	"sync/atomic"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/state"
)

// DevAccount account for development.
type DevAccount struct {
	Pubkey     pledge.Pubkey
	PrivateKey ed25519.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	seeds := []string{
		"99f3c8a7d2b4e16f05c9a8d37e21b4c6d8f0a2b4c6e8d0f2a4b6c8e0d2f4a6b8",
		"4d1e8b2a6c3f9d07e5a1b8c4d2f6e0a3b7c9d1e5f2a8b4c6d0e2f4a6b8c0d2e4",
		"7a2b9c4d1e6f83a0b5c7d9e1f3a5b7c9d1e3f5a7b9c1d3e5f7a9b1c3d5e7f9a1",
		"c5d7e9f1a3b5c7d9e1f3a5b7c9d1e3f5a7b9c1d3e5f7a9b1c3d5e7f9a1b3c5d7",
		"0f2a4b6c8e0d2f4a6b8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a",
		"e1f3a5b7c9d1e3f5a7b9c1d3e5f7a9b1c3d5e7f9a1b3c5d7e9f1a3b5c7d9e1f3",
		"8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8e0d2f4a6b8c0d2e4f6a8b0c",
		"3e5f7a9b1c3d5e7f9a1b3c5d7e9f1a3b5c7d9e1f3a5b7c9d1e3f5a7b9c1d3e5f",
		"6c8e0d2f4a6b8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8e",
		"b7c9d1e3f5a7b9c1d3e5f7a9b1c3d5e7f9a1b3c5d7e9f1a3b5c7d9e1f3a5b7c9",
	}
	for _, str := range seeds {
		seed, err := hex.DecodeString(str)
		if err != nil {
			panic(err)
		}
		priv := ed25519.NewKeyFromSeed(seed)
		pub := pledge.BytesToPubkey(priv.Public().(ed25519.PublicKey))
		accs = append(accs, DevAccount{pub, priv})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet create genesis for solo mode. Every dev account starts with a
// thousand PLG worth of lamports.
func NewDevnet() *Genesis {
	launchTime := uint64(1735689600) // 'Wed Jan 01 2025 00:00:00 GMT+0000'

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(state *state.State) error {
			for _, a := range DevAccounts() {
				if err := state.SetLamports(a.Pubkey, 1_000_000_000_000); err != nil {
					return err
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}
	return &Genesis{builder, id, "devnet"}
}
