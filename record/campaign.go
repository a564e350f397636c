// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package record defines the typed records the campaign program persists in
// account data buffers, and their borsh wire codec. The codec is the trusted
// serialization boundary: decode yields a fully-owned struct, mutation happens
// on the struct, and the re-encoded bytes overwrite the buffer in one step.
package record

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/pledge"
)

// Campaign is the record persisted in a campaign account.
// Layout (borsh, little-endian): admin 32 raw bytes, then name, description
// and image link as u32-length-prefixed UTF-8, then the donated counter u64.
type Campaign struct {
	Admin         pledge.Pubkey
	Name          string
	Description   string
	ImageLink     string
	AmountDonated uint64
}

// DecodeCampaign decodes a campaign record from the prefix of buf.
// Trailing bytes are tolerated: the host provisions fixed-size buffers and the
// record is written into the prefix, so slack must stay readable.
func DecodeCampaign(buf []byte) (*Campaign, error) {
	var c Campaign
	if err := bin.NewBorshDecoder(buf).Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decode campaign")
	}
	return &c, nil
}

// Encode encodes the record into a fresh buffer.
func (c *Campaign) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := bin.NewBorshEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode campaign")
	}
	return buf.Bytes(), nil
}
