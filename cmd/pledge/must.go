// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/pledgechain/pledge/co"
	"github.com/pledgechain/pledge/genesis"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/logdb"
	"github.com/pledgechain/pledge/lvldb"
	"github.com/pledgechain/pledge/state"
)

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	network := ctx.String(networkFlag.Name)
	switch network {
	case "", "devnet":
		return genesis.NewDevnet()
	default:
		file, err := os.Open(network)
		if err != nil {
			fatal(fmt.Sprintf("open genesis file: %v", err))
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		decoder.DisallowUnknownFields()

		var gen genesis.CustomGenesis
		if err := decoder.Decode(&gen); err != nil {
			fatal(fmt.Sprintf("decode genesis file: %v", err))
		}

		customGen, err := genesis.NewCustomNet(&gen)
		if err != nil {
			fatal(fmt.Sprintf("build genesis: %v", err))
		}
		return customGen
	}
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := makeDataDir(ctx)

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, dataDir string) *lvldb.LevelDB {
	cacheMB, err := readIntFromUint64Flag(ctx.Uint64(cacheFlag.Name))
	if err != nil {
		fatal("parse cache flag:", err)
	}
	cacheMB = normalizeCacheSize(cacheMB)
	logger.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))

	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return db
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openLogDB(_ *cli.Context, dataDir string) *logdb.LogDB {
	dir := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(dir)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", dir, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open main database: %v", err))
	}
	return db
}

func openMemLogDB() *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open log database: %v", err))
	}
	return db
}

func initLedger(gene *genesis.Genesis, mainDB *lvldb.LevelDB, stater *state.Stater) *ledger.Ledger {
	ldgr, err := ledger.NewLedger(mainDB, gene.ID())
	if err != nil {
		fatal(fmt.Sprintf("open ledger: %v", err))
	}

	// Account state evolves in place, so the genesis allocations are laid
	// down only while no entry has settled on top of them.
	if ldgr.HeadSeq() == 0 {
		id, err := gene.Build(stater)
		if err != nil {
			fatal(fmt.Sprintf("build genesis state: %v", err))
		}
		if id != gene.ID() {
			fatal(fmt.Sprintf("genesis state mismatch: %v != %v", id, gene.ID()))
		}
	}
	return ldgr
}

func handleAPITimeout(handler http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		r = r.WithContext(ctx)
		handler.ServeHTTP(w, r)
	})
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}
	timeout := ctx.Uint64(apiTimeoutFlag.Name)
	if timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	srv := &http.Server{Handler: handler}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}
}

func printStartupMessage(
	gene *genesis.Genesis,
	ldgr *ledger.Ledger,
	dataDir string,
	apiURL string,
) {
	info := fmt.Sprintf(`Starting %v
    Network     [ %v %v ]
    Head entry  [ #%v ]
    Data dir    [ %v ]
    API portal  [ %v ]`,
		common.MakeName("Pledge", fullVersion()),
		gene.ID(), gene.Name(),
		ldgr.HeadSeq(),
		dataDir,
		apiURL)

	if gene.Name() == "devnet" {
		tableHead := `
┌──────────────────────────────────────────────┬──────────────────────────────────────────────────────────────────┐
│                    Pubkey                    │                               Seed                               │`
		tableContent := `
├──────────────────────────────────────────────┼──────────────────────────────────────────────────────────────────┤
│ %-44v │ %v │`
		tableEnd := `
└──────────────────────────────────────────────┴──────────────────────────────────────────────────────────────────┘`

		info += tableHead
		for _, a := range genesis.DevAccounts() {
			info += fmt.Sprintf(tableContent,
				a.Pubkey,
				hex.EncodeToString(a.PrivateKey.Seed()),
			)
		}
		info += tableEnd
	}
	info += "\r\n"

	fmt.Print(info)
}
