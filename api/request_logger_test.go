// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pledgechain/pledge/log"
)

func TestRequestLoggerHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(log.JSONHandler(&buf))

	var gotBody string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the body must still be readable downstream
		b := new(bytes.Buffer)
		b.ReadFrom(r.Body)
		gotBody = b.String()
		w.WriteHeader(http.StatusAccepted)
	})

	handler := RequestLoggerHandler(inner, logger)
	request := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("test body"))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Equal(t, "test body", gotBody)

	logged := buf.String()
	assert.Contains(t, logged, "API Request")
	assert.Contains(t, logged, "/test")
	assert.Contains(t, logged, "test body")
	assert.Contains(t, logged, http.MethodPost)
}
