// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pledgechain/pledge/kv"
	"github.com/pledgechain/pledge/pledge"
)

// Stater is the state factory over one account store.
type Stater struct {
	store kv.GetPutter
}

// NewStater creates a stater.
func NewStater(store kv.GetPutter) *Stater {
	return &Stater{store: store}
}

// NewState creates a fresh state over the committed accounts.
func (st *Stater) NewState() *State {
	return New(st.store)
}

// IterateAccounts walks all committed accounts in key order. The callback
// returns false to stop the walk.
func (st *Stater) IterateAccounts(cb func(key pledge.Pubkey, acc *Account) bool) error {
	it := accountBucket.NewGetter(st.store).NewIterator(kv.Range{})
	defer it.Release()

	for it.Next() {
		key := pledge.BytesToPubkey(it.Key())
		var acc Account
		if err := rlp.DecodeBytes(it.Value(), &acc); err != nil {
			return &Error{err}
		}
		if !cb(key, &acc) {
			break
		}
	}
	if err := it.Error(); err != nil {
		return &Error{err}
	}
	return nil
}
