// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaign_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
	"github.com/pledgechain/pledge/program/campaign"
	"github.com/pledgechain/pledge/record"
	"github.com/pledgechain/pledge/rent"
)

type acct struct {
	key      pledge.Pubkey
	owner    pledge.Pubkey
	lamports uint64
	data     []byte
	signer   bool
}

func (a *acct) Key() pledge.Pubkey       { return a.key }
func (a *acct) Owner() pledge.Pubkey     { return a.owner }
func (a *acct) SetOwner(o pledge.Pubkey) { a.owner = o }
func (a *acct) Lamports() uint64         { return a.lamports }
func (a *acct) SetLamports(v uint64)     { a.lamports = v }
func (a *acct) Data() []byte             { return append([]byte(nil), a.data...) }
func (a *acct) SetData(b []byte)         { a.data = append([]byte(nil), b...) }
func (a *acct) IsSigner() bool           { return a.signer }
func (a *acct) IsWritable() bool         { return true }

func (a *acct) clone() *acct {
	c := *a
	c.data = append([]byte(nil), a.data...)
	return &c
}

func pk(tag string) pledge.Pubkey {
	return pledge.BytesToPubkey([]byte(tag))
}

func process(accounts []program.Account, data []byte) error {
	env := program.NewEnv(campaign.ProgramID, accounts, data)
	return campaign.New().Process(env)
}

func mustEncode(t *testing.T, inst campaign.Instruction) []byte {
	data, err := campaign.EncodeInstruction(inst)
	assert.Nil(t, err)
	return data
}

// campaignAccount returns a program-owned account sized for rec with balance
// floor+surplus, its data buffer already holding rec.
func campaignAccount(t *testing.T, key pledge.Pubkey, rec record.Campaign, surplus uint64) *acct {
	encoded, err := rec.Encode()
	assert.Nil(t, err)
	size := len(encoded) + 32 // slack past the record
	buf := make([]byte, size)
	copy(buf, encoded)
	return &acct{
		key:      key,
		owner:    campaign.ProgramID,
		lamports: rent.MinimumBalance(uint64(size)) + surplus,
		data:     buf,
	}
}

func assertUntouched(t *testing.T, before, after *acct) {
	assert.Equal(t, before.lamports, after.lamports)
	assert.Equal(t, before.data, after.data)
}

func TestDecodeInstruction(t *testing.T) {
	_, err := campaign.DecodeInstruction(nil)
	assert.ErrorIs(t, err, program.ErrInvalidInstruction)

	_, err = campaign.DecodeInstruction([]byte{3})
	assert.ErrorIs(t, err, program.ErrInvalidInstruction)

	_, err = campaign.DecodeInstruction([]byte{0, 1, 2, 3})
	assert.ErrorIs(t, err, program.ErrBadRecordData)

	_, err = campaign.DecodeInstruction([]byte{1, 0xff})
	assert.ErrorIs(t, err, program.ErrBadRecordData)

	inst, err := campaign.DecodeInstruction([]byte{1, 0xf4, 1, 0, 0, 0, 0, 0, 0})
	assert.Nil(t, err)
	assert.Equal(t, &campaign.Withdraw{Request: record.WithdrawRequest{Amount: 500}}, inst)

	// donate ignores its payload
	inst, err = campaign.DecodeInstruction([]byte{2, 0xde, 0xad})
	assert.Nil(t, err)
	assert.Equal(t, &campaign.Donate{}, inst)

	rec := record.Campaign{Admin: pk("admin"), Name: "n", Description: "d", ImageLink: "i"}
	data := mustEncode(t, &campaign.CreateCampaign{Campaign: rec})
	inst, err = campaign.DecodeInstruction(data)
	assert.Nil(t, err)
	assert.Equal(t, &campaign.CreateCampaign{Campaign: rec}, inst)
}

func TestCreateCampaign(t *testing.T) {
	creator := pk("creator")
	rec := record.Campaign{
		Admin:         creator,
		Name:          "clean water",
		Description:   "wells for the valley",
		ImageLink:     "ipfs://bafy",
		AmountDonated: 777, // must be zeroed on creation
	}
	encoded, err := rec.Encode()
	assert.Nil(t, err)

	size := len(encoded) + 16
	writing := &acct{
		key:      pk("campaign1"),
		owner:    campaign.ProgramID,
		lamports: rent.MinimumBalance(uint64(size)),
		data:     make([]byte, size),
	}
	signer := &acct{key: creator, signer: true}

	err = process([]program.Account{writing, signer}, mustEncode(t, &campaign.CreateCampaign{Campaign: rec}))
	assert.Nil(t, err)

	stored, err := record.DecodeCampaign(writing.data)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), stored.AmountDonated)
	assert.Equal(t, rec.Name, stored.Name)
	assert.Equal(t, creator, stored.Admin)
	assert.Equal(t, size, len(writing.data))
}

func TestCreateCampaignPreconditions(t *testing.T) {
	creator := pk("creator")
	rec := record.Campaign{Admin: creator, Name: "n"}
	payload := func(r record.Campaign) []byte {
		return mustEncode(t, &campaign.CreateCampaign{Campaign: r})
	}
	newWriting := func() *acct {
		size := 128
		return &acct{
			key:      pk("campaign1"),
			owner:    campaign.ProgramID,
			lamports: rent.MinimumBalance(128),
			data:     make([]byte, size),
		}
	}

	// creator did not sign
	writing := newWriting()
	err := process([]program.Account{writing, &acct{key: creator}}, payload(rec))
	assert.ErrorIs(t, err, program.ErrUnauthorized)
	assertUntouched(t, newWriting(), writing)

	// account not provisioned for the program
	writing = newWriting()
	writing.owner = pk("other program")
	err = process([]program.Account{writing, &acct{key: creator, signer: true}}, payload(rec))
	assert.ErrorIs(t, err, program.ErrIncorrectOwner)

	// admin differs from creator
	writing = newWriting()
	err = process(
		[]program.Account{writing, &acct{key: creator, signer: true}},
		payload(record.Campaign{Admin: pk("impostor"), Name: "n"}),
	)
	assert.ErrorIs(t, err, program.ErrInvalidRecord)
	assertUntouched(t, newWriting(), writing)

	// balance below the rent floor
	writing = newWriting()
	writing.lamports = rent.MinimumBalance(128) - 1
	err = process([]program.Account{writing, &acct{key: creator, signer: true}}, payload(rec))
	assert.ErrorIs(t, err, program.ErrInsufficientFunds)

	// record larger than the provisioned buffer
	writing = newWriting()
	writing.data = make([]byte, 8)
	writing.lamports = rent.MinimumBalance(8)
	err = process([]program.Account{writing, &acct{key: creator, signer: true}}, payload(rec))
	assert.ErrorIs(t, err, program.ErrBadRecordData)

	// account list too short
	err = process([]program.Account{newWriting()}, payload(rec))
	assert.ErrorIs(t, err, program.ErrNotEnoughAccounts)
}

func TestWithdraw(t *testing.T) {
	admin := pk("admin")
	rec := record.Campaign{Admin: admin, Name: "n", AmountDonated: 500}
	writing := campaignAccount(t, pk("campaign1"), rec, 500)
	adminAcct := &acct{key: admin, lamports: 10, signer: true}
	recordBefore := writing.Data()

	err := process(
		[]program.Account{writing, adminAcct},
		mustEncode(t, &campaign.Withdraw{Request: record.WithdrawRequest{Amount: 500}}),
	)
	assert.Nil(t, err)
	assert.Equal(t, rent.MinimumBalance(uint64(len(writing.data))), writing.lamports)
	assert.Equal(t, uint64(510), adminAcct.lamports)
	// the record itself is not touched by a withdrawal
	assert.Equal(t, recordBefore, writing.data)
}

func TestWithdrawPreconditions(t *testing.T) {
	admin := pk("admin")
	rec := record.Campaign{Admin: admin, Name: "n"}
	withdraw := func(amount uint64) []byte {
		return mustEncode(t, &campaign.Withdraw{Request: record.WithdrawRequest{Amount: amount}})
	}

	// admin did not sign
	writing := campaignAccount(t, pk("campaign1"), rec, 500)
	err := process([]program.Account{writing, &acct{key: admin}}, withdraw(1))
	assert.ErrorIs(t, err, program.ErrUnauthorized)

	// account not owned by the program
	writing = campaignAccount(t, pk("campaign1"), rec, 500)
	writing.owner = pk("other program")
	err = process([]program.Account{writing, &acct{key: admin, signer: true}}, withdraw(1))
	assert.ErrorIs(t, err, program.ErrIncorrectOwner)

	// signer is not the stored admin
	writing = campaignAccount(t, pk("campaign1"), rec, 500)
	err = process([]program.Account{writing, &acct{key: pk("impostor"), signer: true}}, withdraw(1))
	assert.ErrorIs(t, err, program.ErrInvalidRecord)

	// garbled record
	writing = campaignAccount(t, pk("campaign1"), rec, 500)
	writing.data = writing.data[:8]
	err = process([]program.Account{writing, &acct{key: admin, signer: true}}, withdraw(1))
	assert.ErrorIs(t, err, program.ErrBadRecordData)

	// amount exceeds the surplus above the rent floor
	writing = campaignAccount(t, pk("campaign1"), rec, 500)
	adminAcct := &acct{key: admin, lamports: 10, signer: true}
	before := writing.clone()
	err = process([]program.Account{writing, adminAcct}, withdraw(501))
	assert.ErrorIs(t, err, program.ErrInsufficientFunds)
	assertUntouched(t, before, writing)
	assert.Equal(t, uint64(10), adminAcct.lamports)

	// balance already below the rent floor
	writing = campaignAccount(t, pk("campaign1"), rec, 0)
	writing.lamports = 100
	err = process([]program.Account{writing, &acct{key: admin, signer: true}}, withdraw(1))
	assert.ErrorIs(t, err, program.ErrInsufficientFunds)
	assert.Equal(t, uint64(100), writing.lamports)

	// admin balance would wrap
	writing = campaignAccount(t, pk("campaign1"), rec, 500)
	adminAcct = &acct{key: admin, lamports: math.MaxUint64, signer: true}
	before = writing.clone()
	err = process([]program.Account{writing, adminAcct}, withdraw(1))
	assert.ErrorIs(t, err, program.ErrLamportOverflow)
	assertUntouched(t, before, writing)
	assert.Equal(t, uint64(math.MaxUint64), adminAcct.lamports)
}

func TestWithdrawToSelf(t *testing.T) {
	// the campaign account withdrawing to itself debits and credits the
	// same balance, netting to zero
	key := pk("campaign1")
	rec := record.Campaign{Admin: key, Name: "n"}
	writing := campaignAccount(t, key, rec, 500)
	writing.signer = true
	balance := writing.lamports

	err := process(
		[]program.Account{writing, writing},
		mustEncode(t, &campaign.Withdraw{Request: record.WithdrawRequest{Amount: 100}}),
	)
	assert.Nil(t, err)
	assert.Equal(t, balance, writing.lamports)
}

func TestDonate(t *testing.T) {
	admin := pk("admin")
	rec := record.Campaign{Admin: admin, Name: "n", AmountDonated: 100}
	writing := campaignAccount(t, pk("campaign1"), rec, 100)
	staging := &acct{key: pk("staging1"), owner: campaign.ProgramID, lamports: 500}
	donator := &acct{key: pk("donator"), lamports: 42, signer: true}
	total := writing.lamports + staging.lamports + donator.lamports

	err := process([]program.Account{writing, staging, donator}, []byte{2})
	assert.Nil(t, err)

	stored, err := record.DecodeCampaign(writing.data)
	assert.Nil(t, err)
	assert.Equal(t, uint64(600), stored.AmountDonated)
	assert.Equal(t, uint64(0), staging.lamports)
	assert.Equal(t, uint64(42), donator.lamports)
	assert.Equal(t, total, writing.lamports+staging.lamports+donator.lamports)
}

func TestDonatePreconditions(t *testing.T) {
	admin := pk("admin")
	rec := record.Campaign{Admin: admin, Name: "n"}
	newStaging := func() *acct {
		return &acct{key: pk("staging1"), owner: campaign.ProgramID, lamports: 500}
	}
	donator := func() *acct {
		return &acct{key: pk("donator"), signer: true}
	}

	// campaign account not owned by the program
	writing := campaignAccount(t, pk("campaign1"), rec, 0)
	writing.owner = pk("other program")
	err := process([]program.Account{writing, newStaging(), donator()}, []byte{2})
	assert.ErrorIs(t, err, program.ErrIncorrectOwner)

	// staging account not owned by the program
	writing = campaignAccount(t, pk("campaign1"), rec, 0)
	staging := newStaging()
	staging.owner = pk("other program")
	err = process([]program.Account{writing, staging, donator()}, []byte{2})
	assert.ErrorIs(t, err, program.ErrIncorrectOwner)

	// donator did not sign
	writing = campaignAccount(t, pk("campaign1"), rec, 0)
	err = process([]program.Account{writing, newStaging(), &acct{key: pk("donator")}}, []byte{2})
	assert.ErrorIs(t, err, program.ErrUnauthorized)

	// staging aliases the campaign account
	writing = campaignAccount(t, pk("campaign1"), rec, 0)
	err = process([]program.Account{writing, writing, donator()}, []byte{2})
	assert.ErrorIs(t, err, program.ErrInvalidInstruction)

	// garbled record
	writing = campaignAccount(t, pk("campaign1"), rec, 0)
	writing.data = writing.data[:8]
	before := writing.clone()
	staging = newStaging()
	err = process([]program.Account{writing, staging, donator()}, []byte{2})
	assert.ErrorIs(t, err, program.ErrBadRecordData)
	assertUntouched(t, before, writing)
	assert.Equal(t, uint64(500), staging.lamports)

	// donated counter would wrap
	writing = campaignAccount(t, pk("campaign1"), record.Campaign{Admin: admin, Name: "n", AmountDonated: math.MaxUint64}, 0)
	before = writing.clone()
	staging = newStaging()
	err = process([]program.Account{writing, staging, donator()}, []byte{2})
	assert.ErrorIs(t, err, program.ErrLamportOverflow)
	assertUntouched(t, before, writing)
	assert.Equal(t, uint64(500), staging.lamports)
}

// TestCampaignLifecycle walks one campaign from creation through a donation
// to a full withdrawal of the surplus.
func TestCampaignLifecycle(t *testing.T) {
	admin := pk("admin")
	rec := record.Campaign{Admin: admin, Name: "clean water", Description: "d", ImageLink: "i"}
	encoded, err := rec.Encode()
	assert.Nil(t, err)

	size := len(encoded)
	floor := rent.MinimumBalance(uint64(size))
	writing := &acct{
		key:      pk("campaign1"),
		owner:    campaign.ProgramID,
		lamports: floor,
		data:     make([]byte, size),
	}
	adminAcct := &acct{key: admin, signer: true}

	err = process([]program.Account{writing, adminAcct}, mustEncode(t, &campaign.CreateCampaign{Campaign: rec}))
	assert.Nil(t, err)

	staging := &acct{key: pk("staging1"), owner: campaign.ProgramID, lamports: 500}
	donator := &acct{key: pk("donator"), signer: true}
	err = process([]program.Account{writing, staging, donator}, []byte{2})
	assert.Nil(t, err)
	assert.Equal(t, floor+500, writing.lamports)
	assert.Equal(t, uint64(0), staging.lamports)

	drain := mustEncode(t, &campaign.Withdraw{Request: record.WithdrawRequest{Amount: 500}})
	err = process([]program.Account{writing, adminAcct}, drain)
	assert.Nil(t, err)
	assert.Equal(t, floor, writing.lamports)
	assert.Equal(t, uint64(500), adminAcct.lamports)

	// replaying the drain validates against the drained balance
	err = process([]program.Account{writing, adminAcct}, drain)
	assert.ErrorIs(t, err, program.ErrInsufficientFunds)
	assert.Equal(t, floor, writing.lamports)
	assert.Equal(t, uint64(500), adminAcct.lamports)

	// only the rent floor remains, nothing left to withdraw
	err = process(
		[]program.Account{writing, adminAcct},
		mustEncode(t, &campaign.Withdraw{Request: record.WithdrawRequest{Amount: 1}}),
	)
	assert.ErrorIs(t, err, program.ErrInsufficientFunds)

	stored, err := record.DecodeCampaign(writing.data)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), stored.AmountDonated)
}
