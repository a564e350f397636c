// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package campaign implements the crowdfunding program. A campaign lives in a
// program-owned account: the record in the data buffer names the admin and
// accumulates the donated counter, while the account's lamport balance holds
// the raised funds on top of the rent-exempt floor. Three instructions mutate
// that state: CreateCampaign writes the record, Donate sweeps a staging
// account's balance in, Withdraw pays the admin out of the surplus above the
// floor. Every handler validates before it mutates, so a failed instruction
// leaves accounts byte-for-byte untouched.
package campaign

import (
	"math/bits"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
	"github.com/pledgechain/pledge/record"
	"github.com/pledgechain/pledge/rent"
)

// ProgramID is the id the campaign program registers under.
var ProgramID = pledge.BytesToPubkey([]byte("campaign"))

// Program is the campaign program.
type Program struct{}

// New creates the campaign program.
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
	case *CreateCampaign:
		return p.create(env, &inst.Campaign)
	case *Withdraw:
		return p.withdraw(env, &inst.Request)
	case *Donate:
		return p.donate(env)
	default:
		return program.ErrInvalidInstruction
	}
}

// create initializes the campaign record of account 0. Account 1 is the
// creator, who must sign and must be the record's admin.
func (p *Program) create(env *program.Env, rec *record.Campaign) error {
	writing, err := env.Account(0)
	if err != nil {
		return err
	}
	creator, err := env.Account(1)
	if err != nil {
		return err
	}

	if !creator.IsSigner() {
		return program.ErrUnauthorized
	}
	if writing.Owner() != ProgramID {
		return program.ErrIncorrectOwner
	}
	if rec.Admin != creator.Key() {
		return program.ErrInvalidRecord
	}
	data := writing.Data()
	if writing.Lamports() < rent.MinimumBalance(uint64(len(data))) {
		return program.ErrInsufficientFunds
	}

	stored := *rec
	stored.AmountDonated = 0
	encoded, err := stored.Encode()
	if err != nil {
		return program.ErrBadRecordData
	}
	if len(encoded) > len(data) {
		return program.ErrBadRecordData
	}
	copy(data, encoded)
	writing.SetData(data)
	return nil
}

// withdraw pays account 1, the stored admin, out of campaign account 0.
// Only the surplus above the rent-exempt floor is withdrawable.
func (p *Program) withdraw(env *program.Env, req *record.WithdrawRequest) error {
	writing, err := env.Account(0)
	if err != nil {
		return err
	}
	admin, err := env.Account(1)
	if err != nil {
		return err
	}

	if writing.Owner() != ProgramID {
		return program.ErrIncorrectOwner
	}
	if !admin.IsSigner() {
		return program.ErrUnauthorized
	}
	rec, err := record.DecodeCampaign(writing.Data())
	if err != nil {
		return program.ErrBadRecordData
	}
	if rec.Admin != admin.Key() {
		return program.ErrInvalidRecord
	}

	balance := writing.Lamports()
	floor := rent.MinimumBalance(uint64(len(writing.Data())))
	if floor > balance {
		return program.ErrInsufficientFunds
	}
	if req.Amount > balance-floor {
		return program.ErrInsufficientFunds
	}
	if _, ok := safeAdd(admin.Lamports(), req.Amount); !ok {
		return program.ErrLamportOverflow
	}

	writing.SetLamports(balance - req.Amount)
	// re-read after the debit so a self-withdraw nets to zero
	admin.SetLamports(admin.Lamports() + req.Amount)
	return nil
}

// donate sweeps the full balance of staging account 1 into campaign
// account 0 and bumps the record's donated counter by the same amount.
// Account 2 is the donator, who must sign.
func (p *Program) donate(env *program.Env) error {
	writing, err := env.Account(0)
	if err != nil {
		return err
	}
	staging, err := env.Account(1)
	if err != nil {
		return err
	}
	donator, err := env.Account(2)
	if err != nil {
		return err
	}

	if writing.Owner() != ProgramID {
		return program.ErrIncorrectOwner
	}
	if staging.Owner() != ProgramID {
		return program.ErrIncorrectOwner
	}
	if !donator.IsSigner() {
		return program.ErrUnauthorized
	}
	if staging.Key() == writing.Key() {
		// the sweep would debit and credit the same balance
		return program.ErrInvalidInstruction
	}
	data := writing.Data()
	rec, err := record.DecodeCampaign(data)
	if err != nil {
		return program.ErrBadRecordData
	}

	amount := staging.Lamports()
	counter, ok := safeAdd(rec.AmountDonated, amount)
	if !ok {
		return program.ErrLamportOverflow
	}
	balance, ok := safeAdd(writing.Lamports(), amount)
	if !ok {
		return program.ErrLamportOverflow
	}
	rec.AmountDonated = counter
	encoded, err := rec.Encode()
	if err != nil {
		return program.ErrBadRecordData
	}
	if len(encoded) > len(data) {
		return program.ErrBadRecordData
	}

	writing.SetLamports(balance)
	staging.SetLamports(0)
	copy(data, encoded)
	writing.SetData(data)
	return nil
}

// safeAdd returns a+b and whether the sum stayed within uint64.
func safeAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}
