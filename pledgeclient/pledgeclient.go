// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pledgeclient is a typed Go client for the PledgeChain REST and
// websocket APIs.
package pledgeclient

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pledgechain/pledge/api/accounts"
	"github.com/pledgechain/pledge/api/campaigns"
	"github.com/pledgechain/pledge/api/node"
	"github.com/pledgechain/pledge/api/subscriptions"
	"github.com/pledgechain/pledge/api/transactions"
	"github.com/pledgechain/pledge/api/transfers"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/pledgeclient/common"
	"github.com/pledgechain/pledge/pledgeclient/httpclient"
	"github.com/pledgechain/pledge/pledgeclient/wsclient"
	"github.com/pledgechain/pledge/tx"
)

type Client struct {
	httpConn *httpclient.Client
	wsConn   *wsclient.Client
}

func New(url string) *Client {
	return &Client{
		httpConn: httpclient.New(url),
	}
}

func NewWithWS(url string) (*Client, error) {
	wsClient, err := wsclient.NewClient(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpConn: httpclient.New(url),
		wsConn:   wsClient,
	}, nil
}

type Option func(*getOptions)

type getOptions struct {
	pending bool
}

func applyOptions(opts []Option) *getOptions {
	options := &getOptions{}
	for _, o := range opts {
		o(options)
	}
	return options
}

// Pending includes pool-pending transactions in lookups.
func Pending() Option {
	return func(o *getOptions) {
		o.pending = true
	}
}

func (c *Client) RawHTTPClient() *httpclient.Client {
	return c.httpConn
}

func (c *Client) RawWSClient() *wsclient.Client {
	return c.wsConn
}

func (c *Client) Account(key pledge.Pubkey) (*accounts.Account, error) {
	return c.httpConn.GetAccount(key)
}

func (c *Client) Campaign(key pledge.Pubkey) (*campaigns.Campaign, error) {
	return c.httpConn.GetCampaign(key)
}

func (c *Client) Campaigns(offset, limit uint64) ([]*campaigns.Campaign, error) {
	return c.httpConn.GetCampaigns(offset, limit)
}

func (c *Client) Transaction(id pledge.Bytes32, opts ...Option) (*transactions.Transaction, error) {
	options := applyOptions(opts)
	return c.httpConn.GetTransaction(id, options.pending)
}

func (c *Client) RawTransaction(id pledge.Bytes32, opts ...Option) (*transactions.RawTransaction, error) {
	options := applyOptions(opts)
	return c.httpConn.GetRawTransaction(id, options.pending)
}

func (c *Client) TransactionReceipt(id pledge.Bytes32) (*transactions.Receipt, error) {
	return c.httpConn.GetTransactionReceipt(id)
}

func (c *Client) SendTransaction(trx *tx.Transaction) (*transactions.SendTxResult, error) {
	rlpTx, err := rlp.EncodeToBytes(trx)
	if err != nil {
		return nil, fmt.Errorf("unable to encode transaction - %w", err)
	}

	return c.SendTransactionRaw(rlpTx)
}

func (c *Client) SendTransactionRaw(rlpTx []byte) (*transactions.SendTxResult, error) {
	return c.httpConn.SendTransaction(&transactions.RawTx{Raw: hexutil.Encode(rlpTx)})
}

func (c *Client) FilterTransfers(req *transfers.TransferFilter) ([]*transfers.FilteredTransfer, error) {
	return c.httpConn.FilterTransfers(req)
}

func (c *Client) NodeStatus() (*node.Status, error) {
	return c.httpConn.GetNodeStatus()
}

// GenesisID fetches the ID of the genesis the node grew from, which signed
// transactions must reference.
func (c *Client) GenesisID() (pledge.Bytes32, error) {
	status, err := c.NodeStatus()
	if err != nil {
		return pledge.Bytes32{}, err
	}
	return status.GenesisID, nil
}

func (c *Client) SubscribeEntries(query string) (<-chan common.EventWrapper[*subscriptions.EntryMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	return c.wsConn.SubscribeEntries(query)
}

func (c *Client) SubscribeTransfers(query string) (<-chan common.EventWrapper[*subscriptions.TransferMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	return c.wsConn.SubscribeTransfers(query)
}

func (c *Client) SubscribeTxPool(query string) (<-chan common.EventWrapper[*subscriptions.PendingTxIDMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("not a websocket typed client")
	}
	return c.wsConn.SubscribeTxPool(query)
}
