// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

// ResolvedTransaction is a transaction resolved against a chain: envelope
// limits checked and every required signature verified.
type ResolvedTransaction struct {
	Tx      *tx.Transaction
	Signers []pledge.Pubkey // verified signer keys, in meta order
}

// ResolveTransaction resolves the transaction and performs basic validation.
func ResolveTransaction(trx *tx.Transaction, genesisRef pledge.Bytes32) (*ResolvedTransaction, error) {
	if trx.Size() > pledge.MaxTxSize {
		return nil, errors.New("tx size too large")
	}
	if trx.GenesisRef() != genesisRef {
		return nil, errors.New("genesis ref mismatch")
	}

	metas := trx.Accounts()
	sigs := trx.Signatures()
	hash := trx.SigningHash()

	var signers []pledge.Pubkey
	for _, meta := range metas {
		if !meta.Signer {
			continue
		}
		i := len(signers)
		if i >= len(sigs) {
			return nil, errors.Errorf("missing signature for %v", meta.Key)
		}
		if !ed25519.Verify(ed25519.PublicKey(meta.Key.Bytes()), hash.Bytes(), sigs[i]) {
			return nil, errors.Errorf("invalid signature for %v", meta.Key)
		}
		signers = append(signers, meta.Key)
	}
	if len(signers) == 0 {
		return nil, errors.New("no signer account")
	}
	if len(signers) != len(sigs) {
		return nil, errors.New("superfluous signatures")
	}

	return &ResolvedTransaction{
		Tx:      trx,
		Signers: signers,
	}, nil
}

// Origin returns the first signer, the account considered the sender.
func (r *ResolvedTransaction) Origin() pledge.Pubkey {
	return r.Signers[0]
}
