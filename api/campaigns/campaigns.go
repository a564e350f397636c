// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package campaigns exposes the campaign records the crowdfunding program
// keeps in its accounts. Listing walks the committed account store and
// decodes every program-owned record; accounts the program owns for other
// purposes (donation staging) carry no record and are skipped.
package campaigns

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/api/restutil"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program/campaign"
	"github.com/pledgechain/pledge/record"
	"github.com/pledgechain/pledge/state"
)

type Campaigns struct {
	stater *state.Stater
	limit  uint64
}

func New(stater *state.Stater, limit uint64) *Campaigns {
	return &Campaigns{
		stater,
		limit,
	}
}

func (c *Campaigns) list(offset, limit uint64) ([]*Campaign, error) {
	result := make([]*Campaign, 0, limit)
	if limit == 0 {
		return result, nil
	}
	var skipped uint64
	err := c.stater.IterateAccounts(func(key pledge.Pubkey, acc *state.Account) bool {
		if acc.Owner != campaign.ProgramID || len(acc.Data) == 0 {
			return true
		}
		rec, err := record.DecodeCampaign(acc.Data)
		if err != nil {
			return true
		}
		if skipped < offset {
			skipped++
			return true
		}
		result = append(result, convertCampaign(key, acc.Lamports, rec))
		return uint64(len(result)) < limit
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Campaigns) get(key pledge.Pubkey) (*Campaign, error) {
	st := c.stater.NewState()
	owner, err := st.GetOwner(key)
	if err != nil {
		return nil, err
	}
	if owner != campaign.ProgramID {
		return nil, nil
	}
	data, err := st.GetData(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	rec, err := record.DecodeCampaign(data)
	if err != nil {
		return nil, nil
	}
	lamports, err := st.GetLamports(key)
	if err != nil {
		return nil, err
	}
	return convertCampaign(key, lamports, rec), nil
}

func (c *Campaigns) handleGetCampaigns(w http.ResponseWriter, req *http.Request) error {
	offset, limit, err := c.parsePaging(req.URL.Query())
	if err != nil {
		return err
	}
	list, err := c.list(offset, limit)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, list)
}

func (c *Campaigns) handleGetCampaign(w http.ResponseWriter, req *http.Request) error {
	key, err := pledge.ParsePubkey(mux.Vars(req)["key"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "key"))
	}
	cam, err := c.get(key)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, cam)
}

func (c *Campaigns) parsePaging(query url.Values) (offset, limit uint64, err error) {
	limit = c.limit
	if v := query.Get("offset"); v != "" {
		offset, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, 0, restutil.BadRequest(errors.WithMessage(err, "offset"))
		}
	}
	if v := query.Get("limit"); v != "" {
		limit, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, 0, restutil.BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit > c.limit {
			return 0, 0, restutil.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", c.limit))
		}
	}
	return offset, limit, nil
}

func (c *Campaigns) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("campaigns_list").
		HandlerFunc(restutil.WrapHandlerFunc(c.handleGetCampaigns))
	sub.Path("/{key}").
		Methods(http.MethodGet).
		Name("campaigns_get_campaign").
		HandlerFunc(restutil.WrapHandlerFunc(c.handleGetCampaign))
}
