// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/pledgechain/pledge/kv"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/stackedmap"
)

// accountBucket namespaces account rows so one physical store can also
// carry the ledger.
const accountBucket = kv.Bucket("s/a")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the world of accounts. Writes stay buffered in a stacked
// map until staged; checkpoints make any span of writes revertable.
type State struct {
	store kv.GetPutter
	cache map[pledge.Pubkey]*Account
	sm    *stackedmap.StackedMap
}

// New creates a state backed by the given account store.
func New(store kv.GetPutter) *State {
	state := State{
		store: accountBucket.NewGetPutter(store),
		cache: make(map[pledge.Pubkey]*Account),
	}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.cacheGetter(key)
	})
	// the base level, so writes outside any checkpoint are legal
	state.sm.Push()
	return &state
}

// cacheGetter implements stackedmap.ReadFunc.
func (s *State) cacheGetter(key any) (any, bool, error) {
	acc, err := s.getCached(key.(pledge.Pubkey))
	if err != nil {
		return nil, false, err
	}
	return acc, true, nil
}

func (s *State) getCached(key pledge.Pubkey) (*Account, error) {
	if acc, ok := s.cache[key]; ok {
		return acc, nil
	}
	acc, err := loadAccount(s.store, key)
	if err != nil {
		return nil, err
	}
	s.cache[key] = acc
	return acc, nil
}

// getAccount gets the account for the given key. The returned account must
// not be modified.
func (s *State) getAccount(key pledge.Pubkey) (*Account, error) {
	v, _, err := s.sm.Get(key)
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

// getAccountCopy gets a copy of the account for the given key.
func (s *State) getAccountCopy(key pledge.Pubkey) (Account, error) {
	acc, err := s.getAccount(key)
	if err != nil {
		return Account{}, err
	}
	return *acc, nil
}

func (s *State) updateAccount(key pledge.Pubkey, acc *Account) {
	s.sm.Put(key, acc)
}

// GetLamports returns the lamport balance of the given account.
func (s *State) GetLamports(key pledge.Pubkey) (uint64, error) {
	acc, err := s.getAccount(key)
	if err != nil {
		return 0, &Error{err}
	}
	return acc.Lamports, nil
}

// SetLamports sets the lamport balance of the given account.
func (s *State) SetLamports(key pledge.Pubkey, lamports uint64) error {
	cpy, err := s.getAccountCopy(key)
	if err != nil {
		return &Error{err}
	}
	cpy.Lamports = lamports
	s.updateAccount(key, &cpy)
	return nil
}

// GetOwner returns the program owning the given account. Unassigned
// accounts are owned by the zero pubkey, the system program.
func (s *State) GetOwner(key pledge.Pubkey) (pledge.Pubkey, error) {
	acc, err := s.getAccount(key)
	if err != nil {
		return pledge.Pubkey{}, &Error{err}
	}
	return acc.Owner, nil
}

// SetOwner reassigns the given account to a program.
func (s *State) SetOwner(key, owner pledge.Pubkey) error {
	cpy, err := s.getAccountCopy(key)
	if err != nil {
		return &Error{err}
	}
	cpy.Owner = owner
	s.updateAccount(key, &cpy)
	return nil
}

// GetData returns the data buffer of the given account. The returned slice
// must not be modified.
func (s *State) GetData(key pledge.Pubkey) ([]byte, error) {
	acc, err := s.getAccount(key)
	if err != nil {
		return nil, &Error{err}
	}
	return acc.Data, nil
}

// SetData sets the data buffer of the given account. The state takes
// ownership of the slice.
func (s *State) SetData(key pledge.Pubkey, data []byte) error {
	cpy, err := s.getAccountCopy(key)
	if err != nil {
		return &Error{err}
	}
	if len(data) == 0 {
		cpy.Data = nil
	} else {
		cpy.Data = data
	}
	s.updateAccount(key, &cpy)
	return nil
}

// Exists returns whether a non-empty account exists for the given key.
func (s *State) Exists(key pledge.Pubkey) (bool, error) {
	acc, err := s.getAccount(key)
	if err != nil {
		return false, &Error{err}
	}
	return !acc.IsEmpty(), nil
}

// Delete clears the account for the given key. Staging removes it from the
// store.
func (s *State) Delete(key pledge.Pubkey) {
	s.updateAccount(key, emptyAccount())
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the revision to pass to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts all writes made after the checkpoint at revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage plays the journal back into a batch over the account store and
// returns the stage holding it. Nothing hits the store until Commit.
func (s *State) Stage() (*Stage, error) {
	changes := make(map[pledge.Pubkey]*Account)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(pledge.Pubkey)] = v.(*Account)
		return true
	})

	batch := s.store.NewBatch()
	for key, acc := range changes {
		if err := saveAccount(batch, key, acc); err != nil {
			return nil, &Error{err}
		}
	}
	return &Stage{batch: batch}, nil
}
