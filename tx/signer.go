// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pledgechain/pledge/pledge"
)

// MustSign signs a transaction with the given private keys.
// It panics if signing fails.
func MustSign(tx *Transaction, keys ...ed25519.PrivateKey) *Transaction {
	trx, err := Sign(tx, keys...)
	if err != nil {
		panic(err)
	}
	return trx
}

// Sign signs a transaction with the given private keys. Every account meta
// flagged as signer must be covered by exactly one matching key; signatures
// are attached in signer meta order.
func Sign(tx *Transaction, keys ...ed25519.PrivateKey) (*Transaction, error) {
	byKey := make(map[pledge.Pubkey]ed25519.PrivateKey, len(keys))
	for _, key := range keys {
		byKey[pledge.BytesToPubkey(key.Public().(ed25519.PublicKey))] = key
	}

	hash := tx.SigningHash()
	var sigs [][]byte
	for _, meta := range tx.body.Accounts {
		if !meta.Signer {
			continue
		}
		key, ok := byKey[meta.Key]
		if !ok {
			return nil, fmt.Errorf("no key for signer %v", meta.Key)
		}
		sigs = append(sigs, ed25519.Sign(key, hash.Bytes()))
	}
	if len(sigs) == 0 {
		return nil, fmt.Errorf("transaction has no signer accounts")
	}
	return tx.WithSignatures(sigs), nil
}
