// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/state"
)

// Genesis describes the initial state of a ledger.
type Genesis struct {
	builder *Builder
	id      pledge.Bytes32
	name    string
}

// Build builds the genesis state into stater.
func (g *Genesis) Build(stater *state.Stater) (pledge.Bytes32, error) {
	return g.builder.Build(stater)
}

// ID returns genesis ID.
func (g *Genesis) ID() pledge.Bytes32 {
	return g.id
}

// Name returns genesis name.
func (g *Genesis) Name() string {
	return g.name
}
