// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
	"github.com/pledgechain/pledge/state"
	"github.com/pledgechain/pledge/tx"
)

// Runtime executes transactions against ledger state.
//
// A program runs over working copies of the accounts its transaction names.
// Nothing reaches state until the program returns nil, so a failing handler
// cannot leave a half-applied mutation behind. Failures split two ways:
// faults of the transaction itself (bad signature, unknown program, expired)
// abort execution with an error and no receipt, while program-level failures
// produce a reverted receipt recording the reason.
type Runtime struct {
	state      *state.State
	registry   *program.Registry
	genesisRef pledge.Bytes32
	seq        uint64
}

// New creates a runtime over the given state, dispatching to the programs in
// registry. genesisRef pins the ledger the runtime belongs to and seq is the
// sequence number execution happens at.
func New(st *state.State, registry *program.Registry, genesisRef pledge.Bytes32, seq uint64) *Runtime {
	return &Runtime{
		state:      st,
		registry:   registry,
		genesisRef: genesisRef,
		seq:        seq,
	}
}

// State returns the state the runtime operates on.
func (rt *Runtime) State() *state.State { return rt.state }

// Seq returns the sequence number the runtime executes at.
func (rt *Runtime) Seq() uint64 { return rt.seq }

// ExecuteTransaction resolves trx and executes it.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	resolved, err := ResolveTransaction(trx, rt.genesisRef)
	if err != nil {
		return nil, err
	}
	return rt.Execute(resolved)
}

// Execute runs an already resolved transaction and returns its receipt.
// A non-nil error means the transaction was not executable at all; state is
// left untouched and no receipt exists for it.
func (rt *Runtime) Execute(resolved *ResolvedTransaction) (*tx.Receipt, error) {
	trx := resolved.Tx
	if exp := trx.Expiration(); exp != 0 && rt.seq > exp {
		return nil, errors.Errorf("tx expired at seq %d, now %d", exp, rt.seq)
	}
	prog, found := rt.registry.FindProgram(trx.ProgramID())
	if !found {
		return nil, errors.Errorf("unknown program %v", trx.ProgramID())
	}

	metas := trx.Accounts()
	entries := make(map[pledge.Pubkey]*entry, len(metas))
	ordered := make([]*entry, 0, len(metas))
	accounts := make([]program.Account, 0, len(metas))
	for _, meta := range metas {
		e, loaded := entries[meta.Key]
		if !loaded {
			var err error
			if e, err = loadEntry(rt.state, meta.Key); err != nil {
				return nil, err
			}
			entries[meta.Key] = e
			ordered = append(ordered, e)
		}
		// privileges are a property of the key, not of the meta
		e.signer = e.signer || meta.Signer
		e.writable = e.writable || meta.Writable
		accounts = append(accounts, e)
	}

	checkpoint := rt.state.NewCheckpoint()
	env := program.NewEnv(trx.ProgramID(), accounts, trx.Data())
	if err := prog.Process(env); err != nil {
		rt.state.RevertTo(checkpoint)
		return &tx.Receipt{Reverted: true, Error: err.Error()}, nil
	}
	for _, e := range ordered {
		if e.dirty && !e.writable {
			rt.state.RevertTo(checkpoint)
			return &tx.Receipt{Reverted: true, Error: program.ErrAccountNotWritable.Error()}, nil
		}
	}
	for _, e := range ordered {
		if err := e.flush(rt.state); err != nil {
			rt.state.RevertTo(checkpoint)
			return nil, err
		}
	}
	return &tx.Receipt{Transfers: extractTransfers(ordered)}, nil
}

// extractTransfers derives the lamport movements of an execution from the
// balance deltas of its accounts. Debits are matched to credits greedily in
// account order; since programs only move lamports between the accounts they
// were given, totals on both sides agree.
func extractTransfers(ordered []*entry) tx.Transfers {
	type delta struct {
		key pledge.Pubkey
		rem uint64
	}
	var debits, credits []*delta
	for _, e := range ordered {
		switch {
		case e.lamports < e.preLamports:
			debits = append(debits, &delta{e.key, e.preLamports - e.lamports})
		case e.lamports > e.preLamports:
			credits = append(credits, &delta{e.key, e.lamports - e.preLamports})
		}
	}

	var transfers tx.Transfers
	i, j := 0, 0
	for i < len(debits) && j < len(credits) {
		amount := debits[i].rem
		if credits[j].rem < amount {
			amount = credits[j].rem
		}
		transfers = append(transfers, &tx.Transfer{
			Sender:    debits[i].key,
			Recipient: credits[j].key,
			Amount:    amount,
		})
		if debits[i].rem -= amount; debits[i].rem == 0 {
			i++
		}
		if credits[j].rem -= amount; credits[j].rem == 0 {
			j++
		}
	}
	return transfers
}
