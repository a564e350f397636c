// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import "github.com/pledgechain/pledge/pledge"

// Env carries everything one instruction execution may touch: the executing
// program's id, the bound accounts in instruction order, and the raw payload.
type Env struct {
	programID pledge.Pubkey
	accounts  []Account
	data      []byte
}

// NewEnv creates an execution environment.
func NewEnv(programID pledge.Pubkey, accounts []Account, data []byte) *Env {
	return &Env{
		programID: programID,
		accounts:  accounts,
		data:      data,
	}
}

// ProgramID returns the executing program's id.
func (env *Env) ProgramID() pledge.Pubkey {
	return env.programID
}

// Account returns the account at the given position, or ErrNotEnoughAccounts
// when the instruction supplied fewer accounts.
func (env *Env) Account(i int) (Account, error) {
	if i >= len(env.accounts) {
		return nil, ErrNotEnoughAccounts
	}
	return env.accounts[i], nil
}

// Accounts returns all bound accounts in instruction order.
func (env *Env) Accounts() []Account {
	return env.accounts
}

// Data returns the raw instruction payload, opcode included.
func (env *Env) Data() []byte {
	return env.data
}
