// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

// WithdrawRequest is the payload a campaign admin attaches to a withdraw
// instruction. Layout (borsh): amount u64 little-endian.
type WithdrawRequest struct {
	Amount uint64
}

// DecodeWithdrawRequest decodes a withdraw request from the prefix of buf.
func DecodeWithdrawRequest(buf []byte) (*WithdrawRequest, error) {
	var w WithdrawRequest
	if err := bin.NewBorshDecoder(buf).Decode(&w); err != nil {
		return nil, errors.Wrap(err, "decode withdraw request")
	}
	return &w, nil
}

// Encode encodes the request into a fresh buffer.
func (w *WithdrawRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := bin.NewBorshEncoder(&buf).Encode(w); err != nil {
		return nil, errors.Wrap(err, "encode withdraw request")
	}
	return buf.Bytes(), nil
}
