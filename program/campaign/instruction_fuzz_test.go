// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaign

import (
	"testing"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/record"
)

func FuzzDecodeInstruction(f *testing.F) {
	rec := record.Campaign{
		Admin:       pledge.BytesToPubkey([]byte("admin")),
		Name:        "n",
		Description: "d",
		ImageLink:   "i",
	}
	if seed, err := EncodeInstruction(&CreateCampaign{Campaign: rec}); err == nil {
		f.Add(seed)
	}
	if seed, err := EncodeInstruction(&Withdraw{Request: record.WithdrawRequest{Amount: 500}}); err == nil {
		f.Add(seed)
	}
	f.Add([]byte{2})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		inst, err := DecodeInstruction(data)
		if err != nil {
			return
		}
		// anything that decodes must re-encode and decode to the same variant
		enc, err := EncodeInstruction(inst)
		if err != nil {
			t.Errorf("failed to encode decoded instruction: %v", err)
		}
		again, err := DecodeInstruction(enc)
		if err != nil {
			t.Errorf("failed to decode re-encoded instruction: %v", err)
		}
		switch inst.(type) {
		case *CreateCampaign, *Withdraw:
			if enc2, _ := EncodeInstruction(again); string(enc2) != string(enc) {
				t.Errorf("roundtrip mismatch")
			}
		}
	})
}
