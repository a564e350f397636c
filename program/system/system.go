// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package system implements the system program, the built-in owner of all
// plain wallet accounts. It provisions fresh accounts for other programs and
// moves lamports between system-owned accounts.
package system

import (
	"errors"
	"math/bits"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
)

// ProgramID is the system program's id, the zero pubkey.
var ProgramID pledge.Pubkey

// ErrAccountInUse marks an attempt to create an account that already holds
// lamports, data or a foreign owner.
var ErrAccountInUse = errors.New("account already in use")

// ErrDataTooLarge marks a requested data buffer beyond the host limit.
var ErrDataTooLarge = errors.New("account data too large")

// Program is the system program.
type Program struct{}

// New creates the system program.
func New() *Program {
	return &Program{}
}

// ID returns the program's registered id.
func (p *Program) ID() pledge.Pubkey {
	return ProgramID
}

// Process decodes and executes one instruction.
func (p *Program) Process(env *program.Env) error {
	inst, err := DecodeInstruction(env.Data())
	if err != nil {
		return err
	}
	switch inst := inst.(type) {
	case *CreateAccount:
		return p.createAccount(env, inst)
	case *Transfer:
		return p.transfer(env, inst)
	default:
		return program.ErrInvalidInstruction
	}
}

// createAccount funds a fresh account 1 from payer account 0, zeroes its
// data buffer at the requested size and hands ownership to inst.Owner.
// Both the payer and the new account must sign.
func (p *Program) createAccount(env *program.Env, inst *CreateAccount) error {
	payer, err := env.Account(0)
	if err != nil {
		return err
	}
	fresh, err := env.Account(1)
	if err != nil {
		return err
	}

	if !payer.IsSigner() || !fresh.IsSigner() {
		return program.ErrUnauthorized
	}
	if payer.Key() == fresh.Key() {
		return program.ErrInvalidInstruction
	}
	if fresh.Lamports() != 0 || len(fresh.Data()) != 0 || fresh.Owner() != ProgramID {
		return ErrAccountInUse
	}
	if inst.Space > pledge.MaxAccountDataSize {
		return ErrDataTooLarge
	}
	if payer.Lamports() < inst.Lamports {
		return program.ErrInsufficientFunds
	}

	payer.SetLamports(payer.Lamports() - inst.Lamports)
	fresh.SetLamports(inst.Lamports)
	fresh.SetData(make([]byte, inst.Space))
	fresh.SetOwner(inst.Owner)
	return nil
}

// transfer moves lamports from signing account 0 to account 1. The source
// must be system-owned; program-owned balances move only through their
// owning program.
func (p *Program) transfer(env *program.Env, inst *Transfer) error {
	from, err := env.Account(0)
	if err != nil {
		return err
	}
	to, err := env.Account(1)
	if err != nil {
		return err
	}

	if !from.IsSigner() {
		return program.ErrUnauthorized
	}
	if from.Owner() != ProgramID {
		return program.ErrIncorrectOwner
	}
	balance := from.Lamports()
	if inst.Lamports > balance {
		return program.ErrInsufficientFunds
	}
	if _, carry := bits.Add64(to.Lamports(), inst.Lamports, 0); carry != 0 {
		return program.ErrLamportOverflow
	}

	from.SetLamports(balance - inst.Lamports)
	// re-read after the debit so a self-transfer nets to zero
	to.SetLamports(to.Lamports() + inst.Lamports)
	return nil
}
