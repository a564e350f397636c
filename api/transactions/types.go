// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pledgechain/pledge/api/restutil"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

// RawTx is the submit body, an RLP encoded transaction in hex.
type RawTx struct {
	Raw string `json:"raw"`
}

func (rt *RawTx) decode() (*tx.Transaction, error) {
	data, err := hexutil.Decode(rt.Raw)
	if err != nil {
		return nil, err
	}
	var trx tx.Transaction
	if err := rlp.DecodeBytes(data, &trx); err != nil {
		return nil, err
	}
	return &trx, nil
}

// TxMeta locates a transaction on the ledger. Nil for pool-pending ones.
type TxMeta struct {
	Seq  uint64 `json:"seq"`
	Time uint64 `json:"time"`
}

// AccountMeta is one account binding of the instruction.
type AccountMeta struct {
	Key      pledge.Pubkey `json:"key"`
	Signer   bool          `json:"signer"`
	Writable bool          `json:"writable"`
}

// Transaction for marshal transaction.
type Transaction struct {
	ID         pledge.Bytes32 `json:"id"`
	GenesisRef pledge.Bytes32 `json:"genesisRef"`
	Expiration uint64         `json:"expiration"`
	Nonce      uint64         `json:"nonce"`
	Program    pledge.Pubkey  `json:"program"`
	Accounts   []AccountMeta  `json:"accounts"`
	Data       string         `json:"data"`
	Origin     pledge.Pubkey  `json:"origin"`
	Size       uint64         `json:"size"`
	Meta       *TxMeta        `json:"meta"`
}

func convertTransaction(trx *tx.Transaction, entry *ledger.Entry) *Transaction {
	metas := trx.Accounts()
	accounts := make([]AccountMeta, len(metas))
	for i, m := range metas {
		accounts[i] = AccountMeta{m.Key, m.Signer, m.Writable}
	}
	converted := &Transaction{
		ID:         trx.ID(),
		GenesisRef: trx.GenesisRef(),
		Expiration: trx.Expiration(),
		Nonce:      trx.Nonce(),
		Program:    trx.ProgramID(),
		Accounts:   accounts,
		Data:       hexutil.Encode(trx.Data()),
		Origin:     trx.Origin(),
		Size:       trx.Size(),
	}
	if entry != nil {
		converted.Meta = &TxMeta{
			Seq:  entry.Seq,
			Time: entry.Time,
		}
	}
	return converted
}

// RawTransaction is the raw=true rendering of a stored transaction.
type RawTransaction struct {
	Raw  string  `json:"raw"`
	Meta *TxMeta `json:"meta"`
}

// SendTxResult is the response of a transaction submission.
type SendTxResult struct {
	ID pledge.Bytes32 `json:"id"`
}

func writeRawTransaction(w http.ResponseWriter, trx *tx.Transaction, entry *ledger.Entry) error {
	encoded, err := rlp.EncodeToBytes(trx)
	if err != nil {
		return err
	}
	converted := &RawTransaction{Raw: hexutil.Encode(encoded)}
	if entry != nil {
		converted.Meta = &TxMeta{
			Seq:  entry.Seq,
			Time: entry.Time,
		}
	}
	return restutil.WriteJSON(w, converted)
}

// Transfer is one lamport movement of an executed transaction.
type Transfer struct {
	Sender    pledge.Pubkey `json:"sender"`
	Recipient pledge.Pubkey `json:"recipient"`
	Amount    uint64        `json:"amount"`
}

// ReceiptMeta locates a receipt on the ledger.
type ReceiptMeta struct {
	Seq      uint64         `json:"seq"`
	Time     uint64         `json:"time"`
	TxID     pledge.Bytes32 `json:"txID"`
	TxOrigin pledge.Pubkey  `json:"txOrigin"`
}

// Receipt for marshal receipt.
type Receipt struct {
	Reverted  bool        `json:"reverted"`
	Error     string      `json:"error"`
	Transfers []*Transfer `json:"transfers"`
	Meta      ReceiptMeta `json:"meta"`
}

func convertReceipt(entry *ledger.Entry) *Receipt {
	transfers := make([]*Transfer, len(entry.Receipt.Transfers))
	for i, transfer := range entry.Receipt.Transfers {
		transfers[i] = &Transfer{
			Sender:    transfer.Sender,
			Recipient: transfer.Recipient,
			Amount:    transfer.Amount,
		}
	}
	return &Receipt{
		Reverted:  entry.Receipt.Reverted,
		Error:     entry.Receipt.Error,
		Transfers: transfers,
		Meta: ReceiptMeta{
			Seq:      entry.Seq,
			Time:     entry.Time,
			TxID:     entry.Tx.ID(),
			TxOrigin: entry.Tx.Origin(),
		},
	}
}
