// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/api/restutil"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/state"
)

type Accounts struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Accounts {
	return &Accounts{
		stater,
	}
}

func (a *Accounts) getAccount(key pledge.Pubkey) (*Account, error) {
	st := a.stater.NewState()
	lamports, err := st.GetLamports(key)
	if err != nil {
		return nil, err
	}
	owner, err := st.GetOwner(key)
	if err != nil {
		return nil, err
	}
	data, err := st.GetData(key)
	if err != nil {
		return nil, err
	}
	return convertAccount(lamports, owner, data), nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	key, err := pledge.ParsePubkey(mux.Vars(req)["key"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "key"))
	}
	acc, err := a.getAccount(key)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, acc)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{key}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAccount))
}
