// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pledgechain/pledge/kv"
	"github.com/pledgechain/pledge/pledge"
)

// Account is the persisted representation of a ledger account.
// RLP encoded objects are stored in the account bucket, one per pubkey.
type Account struct {
	Lamports uint64
	Owner    pledge.Pubkey // the program owning the account
	Data     []byte
}

func emptyAccount() *Account {
	return &Account{}
}

// IsEmpty returns whether the account holds no lamports, no data and is
// unassigned. Empty accounts are not persisted.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && a.Owner.IsZero() && len(a.Data) == 0
}

// loadAccount loads the account for the given key. A missing key yields the
// empty account.
func loadAccount(store kv.Getter, key pledge.Pubkey) (*Account, error) {
	data, err := store.Get(key.Bytes())
	if err != nil {
		if store.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount saves the account for the given key. Empty accounts are
// deleted from the store.
func saveAccount(putter kv.Putter, key pledge.Pubkey, a *Account) error {
	if a.IsEmpty() {
		return putter.Delete(key.Bytes())
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(key.Bytes(), data)
}
