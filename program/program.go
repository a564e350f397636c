// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program defines the boundary between the ledger runtime and the
// native programs it hosts. A program receives an Env with the accounts the
// transaction bound to the instruction plus the raw payload, and either
// applies its state transition or returns an error that reverts it.
package program

import "github.com/pledgechain/pledge/pledge"

// Program executes instructions addressed to its id.
type Program interface {
	// ID returns the id the program is registered under.
	ID() pledge.Pubkey
	// Process executes one instruction.
	Process(env *Env) error
}

// Registry resolves program ids to implementations.
type Registry struct {
	programs map[pledge.Pubkey]Program
}

// NewRegistry creates a registry holding the given programs.
func NewRegistry(programs ...Program) *Registry {
	reg := &Registry{
		programs: make(map[pledge.Pubkey]Program, len(programs)),
	}
	for _, p := range programs {
		reg.programs[p.ID()] = p
	}
	return reg
}

// FindProgram looks up the program registered under id.
func (r *Registry) FindProgram(id pledge.Pubkey) (Program, bool) {
	p, ok := r.programs[id]
	return p, ok
}

// IDs returns the ids of all registered programs.
func (r *Registry) IDs() []pledge.Pubkey {
	ids := make([]pledge.Pubkey, 0, len(r.programs))
	for id := range r.programs {
		ids = append(ids, id)
	}
	return ids
}
