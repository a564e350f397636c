// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/pledgechain/pledge/api/admin/loglevel"

	healthAPI "github.com/pledgechain/pledge/api/admin/health"
)

// New assembles the admin handler, meant to be served on a listener separate
// from the public API.
func New(logLevel *slog.LevelVar, health *healthAPI.Health) http.HandlerFunc {
	router := mux.NewRouter()

	loglevel.New(logLevel).Mount(router, "/admin/loglevel")
	healthAPI.NewAPI(health).Mount(router, "/admin/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
