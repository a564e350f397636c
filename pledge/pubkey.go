// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pledge

import (
	"encoding/json"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// PubkeyLength length of a pubkey in bytes.
	PubkeyLength = 32
)

// Pubkey identifies an account. It is the raw form of an ed25519 public key.
type Pubkey [PubkeyLength]byte

var (
	_ json.Marshaler   = (*Pubkey)(nil)
	_ json.Unmarshaler = (*Pubkey)(nil)
)

// String implements the stringer interface. Pubkeys are presented in base58,
// so the zero key reads "11111111111111111111111111111111".
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns byte slice form of pubkey.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// IsZero returns if pubkey has all zero bytes.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalJSON implements json.Marshaler.
func (p *Pubkey) MarshalJSON() ([]byte, error) {
	if p == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pubkey) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePubkey(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey converts a base58 string into Pubkey type.
func ParsePubkey(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(err, "parse pubkey")
	}
	if len(b) != PubkeyLength {
		return Pubkey{}, errors.New("parse pubkey: invalid length")
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

// MustParsePubkey converts a base58 string into Pubkey type, panic on error.
func MustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// BytesToPubkey converts bytes slice into pubkey.
// If b is larger than pubkey length, b will be cropped (from the left).
// If b is smaller than pubkey length, b will be extended (from the left).
func BytesToPubkey(b []byte) Pubkey {
	var p Pubkey
	if len(b) > PubkeyLength {
		b = b[len(b)-PubkeyLength:]
	}
	copy(p[PubkeyLength-len(b):], b)
	return p
}
