// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/pledgechain/pledge/api"
	"github.com/pledgechain/pledge/api/admin/health"
	"github.com/pledgechain/pledge/cmd/pledge/httpserver"
	"github.com/pledgechain/pledge/log"
	"github.com/pledgechain/pledge/logdb"
	"github.com/pledgechain/pledge/lvldb"
	"github.com/pledgechain/pledge/metrics"
	"github.com/pledgechain/pledge/node"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program"
	"github.com/pledgechain/pledge/program/campaign"
	"github.com/pledgechain/pledge/program/system"
	"github.com/pledgechain/pledge/state"
	"github.com/pledgechain/pledge/txpool"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Pledge",
		Usage:     "Node of the PledgeChain crowdfunding ledger",
		Copyright: "2025 The PledgeChain developers",
		Flags: []cli.Flag{
			networkFlag,
			dataDirFlag,
			memFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			onDemandFlag,
			intervalFlag,
			txPoolLimitFlag,
			txPoolLimitPerAccountFlag,
			verbosityFlag,
			jsonLogsFlag,
			pprofFlag,
			skipLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "key",
				Usage:  "generate a new account keypair",
				Action: keyAction,
			},
			{
				Name:  "reindex",
				Usage: "rebuild the transfer log database from ledger entries",
				Flags: []cli.Flag{
					networkFlag,
					dataDirFlag,
					cacheFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: reindexAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	exitSignal := handleExitSignal()

	gene := selectGenesis(ctx)

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)

	if ctx.Bool(memFlag.Name) {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	} else {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		logDB = openLogDB(ctx, instanceDir)
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	stater := state.NewStater(mainDB)
	ldgr := initLedger(gene, mainDB, stater)

	skipLogs := ctx.Bool(skipLogsFlag.Name)
	if !skipLogs {
		if err := syncLogs(exitSignal, ldgr, logDB, false); err != nil {
			return errors.Wrap(err, "sync log db")
		}
	}

	txPool := txpool.New(ldgr, makeTxPoolOptions(ctx))
	defer func() { logger.Info("closing tx pool..."); txPool.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		logger.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	healthStatus := &health.Health{}
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, healthStatus)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		logger.Info("admin server started", "url", url)
		defer closeFunc()
	}

	apiHandler, apiCloser := api.New(ldgr, stater, txPool, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		SkipLogs:        skipLogs,
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	})
	defer func() { logger.Info("closing API..."); apiCloser() }()

	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, ldgr, instanceDir, apiURL)

	registry := program.NewRegistry(system.New(), campaign.New())

	return node.New(
		ldgr,
		stater,
		txPool,
		logDB,
		registry,
		healthStatus,
		node.Options{
			OnDemand: ctx.Bool(onDemandFlag.Name),
			Interval: ctx.Uint64(intervalFlag.Name),
			SkipLogs: skipLogs,
		},
	).Run(exitSignal)
}

func makeTxPoolOptions(ctx *cli.Context) txpool.Options {
	limit, err := readIntFromUint64Flag(ctx.Uint64(txPoolLimitFlag.Name))
	if err != nil {
		fatal("parse txpool-limit flag:", err)
	}
	limitPerAccount, err := readIntFromUint64Flag(ctx.Uint64(txPoolLimitPerAccountFlag.Name))
	if err != nil {
		fatal("parse txpool-limit-per-account flag:", err)
	}
	return txpool.Options{
		Limit:           limit,
		LimitPerAccount: limitPerAccount,
		MaxLifetime:     20 * time.Minute,
	}
}

func keyAction(_ *cli.Context) error {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return errors.Wrap(err, "generate key")
	}

	fmt.Println("pubkey:", pledge.BytesToPubkey(pub))
	fmt.Println("seed:  ", hex.EncodeToString(priv.Seed()))
	return nil
}

func reindexAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	gene := selectGenesis(ctx)
	instanceDir := makeInstanceDir(ctx, gene)

	mainDB := openMainDB(ctx, instanceDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(ctx, instanceDir)
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	stater := state.NewStater(mainDB)
	ldgr := initLedger(gene, mainDB, stater)

	return syncLogs(handleExitSignal(), ldgr, logDB, true)
}
