// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name       string
		handler    HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			"no error",
			func(w http.ResponseWriter, _ *http.Request) error {
				return WriteJSON(w, M{"ok": true})
			},
			http.StatusOK,
			"{\"ok\":true}\n",
		},
		{
			"bad request",
			func(http.ResponseWriter, *http.Request) error {
				return BadRequest(errors.New("something wrong"))
			},
			http.StatusBadRequest,
			"something wrong\n",
		},
		{
			"forbidden",
			func(http.ResponseWriter, *http.Request) error {
				return Forbidden(errors.New("nope"))
			},
			http.StatusForbidden,
			"nope\n",
		},
		{
			"custom status",
			func(http.ResponseWriter, *http.Request) error {
				return HTTPError(nil, http.StatusTeapot)
			},
			http.StatusTeapot,
			"",
		},
		{
			"plain error",
			func(http.ResponseWriter, *http.Request) error {
				return errors.New("boom")
			},
			http.StatusInternalServerError,
			"boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WrapHandlerFunc(tt.handler)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	assert.NoError(t, ParseJSON(strings.NewReader(`{"name":"a"}`), &v))
	assert.Equal(t, "a", v.Name)

	err := ParseJSON(strings.NewReader(`{"name":"a","bogus":1}`), &v)
	assert.Error(t, err)
}
