// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tx defines the ledger's transaction type: one program instruction
// plus the accounts it binds and the signatures authorizing it.
package tx

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pledgechain/pledge/pledge"
)

// Transaction is an immutable transaction type.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Value
		id          atomic.Value
		size        atomic.Value
	}
}

// AccountMeta binds one account to the instruction, with its privileges.
type AccountMeta struct {
	Key      pledge.Pubkey
	Signer   bool
	Writable bool
}

// body describes details of a tx.
type body struct {
	GenesisRef pledge.Bytes32 // id of the chain's genesis, pins the tx to one chain
	Expiration uint64         // last ledger sequence the tx may execute at, 0 for none
	Nonce      uint64
	ProgramID  pledge.Pubkey
	Accounts   []AccountMeta
	Data       []byte
	Signatures [][]byte // aligned with the signer metas, in order
}

// ID returns the transaction id, derived from the signing hash so attaching
// signatures does not change it. The ledger accepts each id at most once.
func (t *Transaction) ID() (id pledge.Bytes32) {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(pledge.Bytes32)
	}
	defer func() { t.cache.id.Store(id) }()

	hash := t.SigningHash()
	return pledge.Blake2b(hash.Bytes())
}

// SigningHash returns the hash signers commit to: the envelope without
// signatures.
func (t *Transaction) SigningHash() (hash pledge.Bytes32) {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return cached.(pledge.Bytes32)
	}
	defer func() { t.cache.signingHash.Store(hash) }()

	return pledge.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			t.body.GenesisRef,
			t.body.Expiration,
			t.body.Nonce,
			t.body.ProgramID,
			t.body.Accounts,
			t.body.Data,
		})
	})
}

// GenesisRef returns the referenced genesis id.
func (t *Transaction) GenesisRef() pledge.Bytes32 {
	return t.body.GenesisRef
}

// Expiration returns the last ledger sequence the tx may execute at,
// 0 for no bound.
func (t *Transaction) Expiration() uint64 {
	return t.body.Expiration
}

// Nonce returns the nonce.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// ProgramID returns the id of the program the instruction addresses.
func (t *Transaction) ProgramID() pledge.Pubkey {
	return t.body.ProgramID
}

// Accounts returns the bound account metas in instruction order.
func (t *Transaction) Accounts() []AccountMeta {
	return append([]AccountMeta(nil), t.body.Accounts...)
}

// Data returns the instruction payload.
func (t *Transaction) Data() []byte {
	return append([]byte(nil), t.body.Data...)
}

// Origin returns the key of the first signer meta, which pays for and
// authorizes the tx. Zero when the tx binds no signer.
func (t *Transaction) Origin() pledge.Pubkey {
	for _, meta := range t.body.Accounts {
		if meta.Signer {
			return meta.Key
		}
	}
	return pledge.Pubkey{}
}

// Signatures returns the attached signatures.
func (t *Transaction) Signatures() [][]byte {
	sigs := make([][]byte, len(t.body.Signatures))
	for i, sig := range t.body.Signatures {
		sigs[i] = append([]byte(nil), sig...)
	}
	return sigs
}

// WithSignatures creates a new tx with the given signatures attached.
func (t *Transaction) WithSignatures(sigs [][]byte) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.Signatures = make([][]byte, len(sigs))
	for i, sig := range sigs {
		newTx.body.Signatures[i] = append([]byte(nil), sig...)
	}
	return &newTx
}

// Size returns the encoded size of the tx.
func (t *Transaction) Size() uint64 {
	if cached := t.cache.size.Load(); cached != nil {
		return cached.(uint64)
	}
	var c writeCounter
	rlp.Encode(&c, t)
	size := uint64(c)
	t.cache.size.Store(size)
	return size
}

// EncodeRLP implements rlp.Encoder.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

type writeCounter uint64

func (c *writeCounter) Write(b []byte) (int, error) {
	*c += writeCounter(len(b))
	return len(b), nil
}

// Transactions a slice of transactions.
type Transactions []*Transaction
