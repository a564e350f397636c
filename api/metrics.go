// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/pledgechain/pledge/metrics"
)

var (
	metricHttpReqCounter       = metrics.LazyLoadCounterVec("api_request_count", []string{"name", "code", "method"})
	metricHttpReqDuration      = metrics.LazyLoadHistogramVec("api_duration_ms", []string{"name", "code", "method"}, metrics.BucketHTTPReqs)
	metricActiveWebsocketCount = metrics.LazyLoadGaugeVec("api_active_websocket_count", []string{"subject"})
)

// metricsResponseWriter is a wrapper around http.ResponseWriter that captures the status code.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{w, http.StatusOK}
}

func (m *metricsResponseWriter) WriteHeader(code int) {
	m.statusCode = code
	m.ResponseWriter.WriteHeader(code)
}

// Hijack passes the websocket upgrade through to the wrapped writer.
func (m *metricsResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return m.ResponseWriter.(http.Hijacker).Hijack()
}

// metricsMiddleware records request count and duration for every named
// route, plus an active-connection gauge per websocket subject.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var name, subscription string

		if current := mux.CurrentRoute(r); current != nil {
			name = current.GetName()
			if strings.HasPrefix(name, "subscriptions_") {
				// example path: /subscriptions/entry
				if paths := strings.Split(r.URL.Path, "/"); len(paths) > 2 {
					subscription = paths[2]
				}
			}
		}
		if subscription != "" {
			metricActiveWebsocketCount().AddWithLabel(1, map[string]string{"subject": subscription})
			defer metricActiveWebsocketCount().AddWithLabel(-1, map[string]string{"subject": subscription})
		}

		now := time.Now()
		mrw := newMetricsResponseWriter(w)
		next.ServeHTTP(mrw, r)

		// only named routes are recorded
		if name != "" {
			labels := map[string]string{"name": name, "code": strconv.Itoa(mrw.statusCode), "method": r.Method}
			metricHttpReqCounter().AddWithLabel(1, labels)
			metricHttpReqDuration().ObserveWithLabels(time.Since(now).Milliseconds(), labels)
		}
	})
}
