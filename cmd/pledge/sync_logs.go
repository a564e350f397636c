// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/logdb"
)

// syncLogs brings the log db up to the ledger head. The log db is derived
// data; a crash between an entry commit and its log commit, or a stretch of
// running with --skip-logs, leaves it behind. Rows replace on conflict, so
// rewriting an already synced entry is harmless. force drops everything and
// rebuilds from entry 1.
func syncLogs(ctx context.Context, ldgr *ledger.Ledger, logDB *logdb.LogDB, force bool) error {
	startPos := uint64(1)
	if force {
		if err := logDB.Truncate(0); err != nil {
			return errors.Wrap(err, "truncate log db")
		}
	} else {
		newestSeq, err := logDB.NewestSeq()
		if err != nil {
			return errors.Wrap(err, "seek log db sync position")
		}
		startPos = newestSeq + 1
	}

	headSeq := ldgr.HeadSeq()
	if headSeq < startPos {
		return nil
	}

	if startPos == 1 {
		fmt.Println(">> Rebuilding log db <<")
	} else {
		fmt.Println(">> Syncing log db <<")
	}

	pb := pb.New64(int64(headSeq)).
		Set64(int64(startPos - 1)).
		SetMaxWidth(90).
		Start()

	defer func() { pb.NotPrint = true }()

	batch := logDB.Prepare()
	uncommitted := 0

	var werr error
	if err := ldgr.IterateEntries(startPos, func(entry *ledger.Entry) bool {
		batch.ForTransaction(entry.Seq, entry.Time, entry.Tx.ID(), entry.Tx.Origin()).
			Insert(entry.Receipt.Transfers)

		if uncommitted++; uncommitted >= 2048 {
			if werr = batch.Commit(); werr != nil {
				return false
			}
			batch = logDB.Prepare()
			uncommitted = 0
		}
		select {
		case <-ctx.Done():
			werr = ctx.Err()
			return false
		default:
		}
		pb.Add64(1)
		return true
	}); err != nil {
		return err
	}
	if werr != nil {
		return werr
	}
	if err := batch.Commit(); err != nil {
		return err
	}
	pb.Finish()
	return nil
}
