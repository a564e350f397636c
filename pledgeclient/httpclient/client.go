// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with a PledgeChain
// node. It offers methods to retrieve accounts, campaigns, transactions,
// transfer logs and node status through the REST API.
package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pledgechain/pledge/api/accounts"
	"github.com/pledgechain/pledge/api/campaigns"
	"github.com/pledgechain/pledge/api/node"
	"github.com/pledgechain/pledge/api/transactions"
	"github.com/pledgechain/pledge/api/transfers"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/pledgeclient/common"
)

// Client represents the HTTP client for interacting with a PledgeChain node.
// It manages communication via HTTP requests.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

// GetAccount retrieves the account under the given key. A never-touched key
// yields the zero account, not an error.
func (c *Client) GetAccount(key pledge.Pubkey) (*accounts.Account, error) {
	body, err := c.httpGET(c.url + "/accounts/" + key.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}

	var account accounts.Account
	if err = json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account - %w", err)
	}

	return &account, nil
}

// GetCampaign retrieves the decoded campaign record held by the given account.
func (c *Client) GetCampaign(key pledge.Pubkey) (*campaigns.Campaign, error) {
	body, err := c.httpGET(c.url + "/campaigns/" + key.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve campaign - %w", err)
	}

	if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, common.ErrNotFound
	}

	var campaign campaigns.Campaign
	if err = json.Unmarshal(body, &campaign); err != nil {
		return nil, fmt.Errorf("unable to unmarshal campaign - %w", err)
	}

	return &campaign, nil
}

// GetCampaigns lists campaigns. A zero limit asks for the node's default
// page size.
func (c *Client) GetCampaigns(offset, limit uint64) ([]*campaigns.Campaign, error) {
	url := c.url + "/campaigns"
	if offset > 0 {
		url += "?offset=" + strconv.FormatUint(offset, 10)
	}
	if limit > 0 {
		if offset > 0 {
			url += "&limit=" + strconv.FormatUint(limit, 10)
		} else {
			url += "?limit=" + strconv.FormatUint(limit, 10)
		}
	}

	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve campaigns - %w", err)
	}

	var list []*campaigns.Campaign
	if err = json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unable to unmarshal campaigns - %w", err)
	}

	return list, nil
}

// GetTransaction retrieves the transaction by its ID. With isPending set,
// pool-pending transactions are returned too.
func (c *Client) GetTransaction(txID pledge.Bytes32, isPending bool) (*transactions.Transaction, error) {
	url := c.url + "/transactions/" + txID.String()
	if isPending {
		url += "?pending=true"
	}

	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve transaction - %w", err)
	}

	if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, common.ErrNotFound
	}

	var tx transactions.Transaction
	if err = json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("unable to unmarshal transaction - %w", err)
	}

	return &tx, nil
}

// GetRawTransaction retrieves the wire encoding of the transaction by its ID.
func (c *Client) GetRawTransaction(txID pledge.Bytes32, isPending bool) (*transactions.RawTransaction, error) {
	url := c.url + "/transactions/" + txID.String() + "?raw=true"
	if isPending {
		url += "&pending=true"
	}

	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve raw transaction - %w", err)
	}

	if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, common.ErrNotFound
	}

	var tx transactions.RawTransaction
	if err = json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("unable to unmarshal raw transaction - %w", err)
	}

	return &tx, nil
}

// GetTransactionReceipt retrieves the receipt for the given transaction ID.
func (c *Client) GetTransactionReceipt(txID pledge.Bytes32) (*transactions.Receipt, error) {
	body, err := c.httpGET(c.url + "/transactions/" + txID.String() + "/receipt")
	if err != nil {
		return nil, fmt.Errorf("unable to fetch receipt - %w", err)
	}

	if len(body) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, common.ErrNotFound
	}

	var receipt transactions.Receipt
	if err = json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to unmarshal receipt - %w", err)
	}

	return &receipt, nil
}

// SendTransaction submits a raw transaction to the node's pool.
func (c *Client) SendTransaction(obj *transactions.RawTx) (*transactions.SendTxResult, error) {
	body, err := c.httpPOST(c.url+"/transactions", obj)
	if err != nil {
		return nil, fmt.Errorf("unable to send raw transaction - %w", err)
	}

	var txID transactions.SendTxResult
	if err = json.Unmarshal(body, &txID); err != nil {
		return nil, fmt.Errorf("unable to unmarshal send transaction result - %w", err)
	}

	return &txID, nil
}

// FilterTransfers filters transfer logs based on the provided filter.
func (c *Client) FilterTransfers(req *transfers.TransferFilter) ([]*transfers.FilteredTransfer, error) {
	body, err := c.httpPOST(c.url+"/logs/transfer", req)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve transfer logs - %w", err)
	}

	var filteredTransfers []*transfers.FilteredTransfer
	if err = json.Unmarshal(body, &filteredTransfers); err != nil {
		return nil, fmt.Errorf("unable to unmarshal transfers - %w", err)
	}

	return filteredTransfers, nil
}

// GetNodeStatus retrieves the node's view of the ledger.
func (c *Client) GetNodeStatus() (*node.Status, error) {
	body, err := c.httpGET(c.url + "/node/status")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve node status - %w", err)
	}

	var status node.Status
	if err = json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("unable to unmarshal node status - %w", err)
	}

	return &status, nil
}
