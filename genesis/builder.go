// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/lvldb"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/state"
)

// Builder helper to build the genesis state.
type Builder struct {
	timestamp uint64
	extraData [28]byte

	stateProcs []func(state *state.State) error
}

// Timestamp set the launch timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// ExtraData set extra data, which the genesis ID commits to.
func (b *Builder) ExtraData(data [28]byte) *Builder {
	b.extraData = data
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID compute the genesis ID by building into a throwaway store.
func (b *Builder) ComputeID() (pledge.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return pledge.Bytes32{}, err
	}
	defer db.Close()
	return b.Build(state.NewStater(db))
}

// Build applies the state processes and commits the result. The returned ID
// commits to the timestamp, the extra data and every account of the built
// state, so two ledgers share an ID only if they grew from the same genesis.
func (b *Builder) Build(stater *state.Stater) (pledge.Bytes32, error) {
	st := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return pledge.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	stage, err := st.Stage()
	if err != nil {
		return pledge.Bytes32{}, errors.Wrap(err, "stage")
	}
	if err := stage.Commit(); err != nil {
		return pledge.Bytes32{}, errors.Wrap(err, "commit state")
	}

	type alloc struct {
		Key      pledge.Pubkey
		Lamports uint64
		Owner    pledge.Pubkey
		Data     []byte
	}
	var allocs []alloc
	if err := stater.IterateAccounts(func(key pledge.Pubkey, acc *state.Account) bool {
		allocs = append(allocs, alloc{key, acc.Lamports, acc.Owner, acc.Data})
		return true
	}); err != nil {
		return pledge.Bytes32{}, errors.Wrap(err, "iterate accounts")
	}

	id := pledge.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []interface{}{
			b.timestamp,
			b.extraData,
			allocs,
		})
	})
	return id, nil
}
