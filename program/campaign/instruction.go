// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaign

import (
	"github.com/pledgechain/pledge/program"
	"github.com/pledgechain/pledge/record"
)

// Instruction opcodes. Byte 0 of the payload selects the operation.
const (
	opCreateCampaign byte = iota
	opWithdraw
	opDonate
)

// Instruction is one decoded campaign instruction. The set is sealed; Process
// matches over it exhaustively.
type Instruction interface {
	isInstruction()
}

// CreateCampaign initializes the campaign record of a program-owned account.
type CreateCampaign struct {
	Campaign record.Campaign
}

// Withdraw moves raised lamports from a campaign account to its admin.
type Withdraw struct {
	Request record.WithdrawRequest
}

// Donate sweeps a program-owned staging account's lamports into a campaign.
type Donate struct{}

func (CreateCampaign) isInstruction() {}
func (Withdraw) isInstruction()       {}
func (Donate) isInstruction()         {}

// DecodeInstruction decodes an instruction payload into its typed variant.
// Byte 0 is the opcode, the remainder the operation's payload. An empty
// payload or unknown opcode yields ErrInvalidInstruction; a payload that does
// not decode yields ErrBadRecordData.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, program.ErrInvalidInstruction
	}
	payload := data[1:]
	switch data[0] {
	case opCreateCampaign:
		rec, err := record.DecodeCampaign(payload)
		if err != nil {
			return nil, program.ErrBadRecordData
		}
		return &CreateCampaign{Campaign: *rec}, nil
	case opWithdraw:
		req, err := record.DecodeWithdrawRequest(payload)
		if err != nil {
			return nil, program.ErrBadRecordData
		}
		return &Withdraw{Request: *req}, nil
	case opDonate:
		return &Donate{}, nil
	default:
		return nil, program.ErrInvalidInstruction
	}
}

// EncodeInstruction renders a typed instruction into the payload form
// DecodeInstruction accepts. It is the client-side half of the codec.
func EncodeInstruction(inst Instruction) ([]byte, error) {
	switch inst := inst.(type) {
	case *CreateCampaign:
		body, err := inst.Campaign.Encode()
		if err != nil {
			return nil, err
		}
		return append([]byte{opCreateCampaign}, body...), nil
	case *Withdraw:
		body, err := inst.Request.Encode()
		if err != nil {
			return nil, err
		}
		return append([]byte{opWithdraw}, body...), nil
	case *Donate:
		return []byte{opDonate}, nil
	default:
		return nil, program.ErrInvalidInstruction
	}
}
