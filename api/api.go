// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/pledgechain/pledge/api/accounts"
	"github.com/pledgechain/pledge/api/campaigns"
	"github.com/pledgechain/pledge/api/node"
	"github.com/pledgechain/pledge/api/subscriptions"
	"github.com/pledgechain/pledge/api/transactions"
	"github.com/pledgechain/pledge/api/transfers"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/log"
	"github.com/pledgechain/pledge/logdb"
	"github.com/pledgechain/pledge/state"
	"github.com/pledgechain/pledge/txpool"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	SkipLogs        bool
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
}

// New assembles the REST handler. The returned closer shuts down the
// subscription connections.
func New(
	ldgr *ledger.Ledger,
	stater *state.Stater,
	txPool *txpool.TxPool,
	logDB *logdb.LogDB,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(stater).
		Mount(router, "/accounts")
	campaigns.New(stater, opts.LogsLimit).
		Mount(router, "/campaigns")
	if !opts.SkipLogs {
		transfers.New(logDB, opts.LogsLimit).
			Mount(router, "/logs/transfer")
	}
	transactions.New(ldgr, txPool).
		Mount(router, "/transactions")
	node.New(ldgr, txPool).
		Mount(router, "/node")
	subs := subscriptions.New(ldgr, txPool)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	genesisID := ldgr.GenesisID().String()
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("x-genesis-id", genesisID)
		handler.ServeHTTP(w, req)
	}, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
