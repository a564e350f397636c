// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
)

// LogDB is the queryable transfer history of the ledger, kept in sqlite
// beside the state store. It is derivable from ledger entries, so it can be
// dropped and rebuilt at any time.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(transferTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() {
	db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// NewestSeq returns the highest sequence number present, 0 when empty.
func (db *LogDB) NewestSeq() (uint64, error) {
	row := db.db.QueryRow("SELECT IFNULL(MAX(seq), 0) FROM transfer")
	var seq int64
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	return uint64(seq), nil
}

// Truncate removes all transfers at or above fromSeq.
func (db *LogDB) Truncate(fromSeq uint64) error {
	_, err := db.db.Exec("DELETE FROM transfer WHERE seq >= ?", int64(fromSeq))
	return err
}

// FilterTransfers queries transfers matching the filter. A nil filter
// selects everything.
func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const cols = "SELECT seq, transferIndex, time, txID, txOrigin, sender, recipient, amount FROM transfer"
	if filter == nil {
		return db.queryTransfers(ctx, cols)
	}
	var args []interface{}
	stmt := cols + " WHERE 1"
	condition := "seq"
	if filter.Range != nil {
		if filter.Range.Unit == Time {
			condition = "time"
		}
		args = append(args, int64(filter.Range.From))
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, int64(filter.Range.To))
			stmt += " AND " + condition + " <= ? "
		}
	}
	if filter.TxID != nil {
		args = append(args, filter.TxID.Bytes())
		stmt += " AND txID = ? "
	}
	length := len(filter.CriteriaSet)
	if length > 0 {
		for i, criteria := range filter.CriteriaSet {
			if i == 0 {
				stmt += " AND (( 1 "
			} else {
				stmt += " OR ( 1 "
			}
			if criteria.TxOrigin != nil {
				args = append(args, criteria.TxOrigin.Bytes())
				stmt += " AND txOrigin = ? "
			}
			if criteria.Sender != nil {
				args = append(args, criteria.Sender.Bytes())
				stmt += " AND sender = ? "
			}
			if criteria.Recipient != nil {
				args = append(args, criteria.Recipient.Bytes())
				stmt += " AND recipient = ? "
			}
			if i == length-1 {
				stmt += " )) "
			} else {
				stmt += " ) "
			}
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC, transferIndex DESC "
	} else {
		stmt += " ORDER BY seq ASC, transferIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       int64
			index     uint32
			time      int64
			txID      []byte
			txOrigin  []byte
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(
			&seq,
			&index,
			&time,
			&txID,
			&txOrigin,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			Seq:       uint64(seq),
			Index:     index,
			Time:      uint64(time),
			TxID:      pledge.BytesToBytes32(txID),
			TxOrigin:  pledge.BytesToPubkey(txOrigin),
			Sender:    pledge.BytesToPubkey(sender),
			Recipient: pledge.BytesToPubkey(recipient),
			Amount:    binary.BigEndian.Uint64(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// EntryBatch accumulates the transfers of committed entries and writes them
// in a single db transaction.
type EntryBatch struct {
	db        *sql.DB
	transfers []*Transfer
}

// Prepare creates an empty batch.
func (db *LogDB) Prepare() *EntryBatch {
	return &EntryBatch{db: db.db}
}

func (eb *EntryBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	sqlTx, err := eb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(sqlTx); err != nil {
		sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

// Commit writes the accumulated transfers.
func (eb *EntryBatch) Commit() error {
	return eb.execInTx(func(sqlTx *sql.Tx) error {
		for _, transfer := range eb.transfers {
			var amount [8]byte
			binary.BigEndian.PutUint64(amount[:], transfer.Amount)
			if _, err := sqlTx.Exec("INSERT INTO transfer(seq, transferIndex, time, txID, txOrigin, sender, recipient, amount) VALUES (?, ?, ?, ?, ?, ?, ?, ?);",
				int64(transfer.Seq),
				transfer.Index,
				int64(transfer.Time),
				transfer.TxID.Bytes(),
				transfer.TxOrigin.Bytes(),
				transfer.Sender.Bytes(),
				transfer.Recipient.Bytes(),
				amount[:],
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// ForTransaction returns an inserter binding transfers to the given
// transaction context. Indices restart at 0 per transaction, so rewriting
// an entry replaces its rows instead of duplicating them.
func (eb *EntryBatch) ForTransaction(seq, time uint64, txID pledge.Bytes32, txOrigin pledge.Pubkey) struct {
	Insert func(tx.Transfers) *EntryBatch
} {
	var index uint32
	return struct {
		Insert func(tx.Transfers) *EntryBatch
	}{
		func(transfers tx.Transfers) *EntryBatch {
			for _, transfer := range transfers {
				eb.transfers = append(eb.transfers, &Transfer{
					Seq:       seq,
					Index:     index,
					Time:      time,
					TxID:      txID,
					TxOrigin:  txOrigin,
					Sender:    transfer.Sender,
					Recipient: transfer.Recipient,
					Amount:    transfer.Amount,
				})
				index++
			}
			return eb
		},
	}
}
