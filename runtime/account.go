// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/state"
)

// entry is the runtime's working copy of one account during execution, and
// the program's view of it. Handlers mutate the copy; the runtime flushes it
// into state only after the program succeeded. Metas naming the same key
// share one entry, with privileges unioned.
type entry struct {
	key      pledge.Pubkey
	lamports uint64
	owner    pledge.Pubkey
	data     []byte

	preLamports uint64 // balance before execution, for transfer extraction
	signer      bool
	writable    bool
	dirty       bool
}

func loadEntry(st *state.State, key pledge.Pubkey) (*entry, error) {
	lamports, err := st.GetLamports(key)
	if err != nil {
		return nil, err
	}
	owner, err := st.GetOwner(key)
	if err != nil {
		return nil, err
	}
	data, err := st.GetData(key)
	if err != nil {
		return nil, err
	}
	return &entry{
		key:         key,
		lamports:    lamports,
		owner:       owner,
		data:        append([]byte(nil), data...),
		preLamports: lamports,
	}, nil
}

// flush writes the mutated copy back into state.
func (e *entry) flush(st *state.State) error {
	if !e.dirty {
		return nil
	}
	if err := st.SetLamports(e.key, e.lamports); err != nil {
		return err
	}
	if err := st.SetOwner(e.key, e.owner); err != nil {
		return err
	}
	return st.SetData(e.key, e.data)
}

func (e *entry) Key() pledge.Pubkey {
	return e.key
}

func (e *entry) Owner() pledge.Pubkey {
	return e.owner
}

func (e *entry) SetOwner(id pledge.Pubkey) {
	e.owner = id
	e.dirty = true
}

func (e *entry) Lamports() uint64 {
	return e.lamports
}

func (e *entry) SetLamports(v uint64) {
	e.lamports = v
	e.dirty = true
}

func (e *entry) Data() []byte {
	return append([]byte(nil), e.data...)
}

func (e *entry) SetData(data []byte) {
	e.data = append([]byte(nil), data...)
	e.dirty = true
}

func (e *entry) IsSigner() bool {
	return e.signer
}

func (e *entry) IsWritable() bool {
	return e.writable
}
