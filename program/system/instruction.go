// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package system

import (
	"bytes"

	bin "github.com/gagliardetto/binary"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
)

const (
	opCreateAccount byte = iota
	opTransfer
)

// Instruction is one decoded system instruction.
type Instruction interface {
	isInstruction()
}

// CreateAccount provisions a fresh account: funds it with Lamports from the
// payer, allocates Space zeroed data bytes and assigns ownership to Owner.
type CreateAccount struct {
	Lamports uint64
	Space    uint64
	Owner    pledge.Pubkey
}

// Transfer moves Lamports from the signing source to the destination.
type Transfer struct {
	Lamports uint64
}

func (CreateAccount) isInstruction() {}
func (Transfer) isInstruction()      {}

// DecodeInstruction decodes a system instruction payload.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, program.ErrInvalidInstruction
	}
	payload := data[1:]
	switch data[0] {
	case opCreateAccount:
		var inst CreateAccount
		if err := bin.NewBorshDecoder(payload).Decode(&inst); err != nil {
			return nil, program.ErrBadRecordData
		}
		return &inst, nil
	case opTransfer:
		var inst Transfer
		if err := bin.NewBorshDecoder(payload).Decode(&inst); err != nil {
			return nil, program.ErrBadRecordData
		}
		return &inst, nil
	default:
		return nil, program.ErrInvalidInstruction
	}
}

// EncodeInstruction renders a typed system instruction into its payload form.
func EncodeInstruction(inst Instruction) ([]byte, error) {
	var (
		op   byte
		body bytes.Buffer
	)
	switch inst.(type) {
	case *CreateAccount:
		op = opCreateAccount
	case *Transfer:
		op = opTransfer
	default:
		return nil, program.ErrInvalidInstruction
	}
	if err := bin.NewBorshEncoder(&body).Encode(inst); err != nil {
		return nil, err
	}
	return append([]byte{op}, body.Bytes()...), nil
}
