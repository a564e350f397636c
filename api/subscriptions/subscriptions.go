// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/pledgechain/pledge/api/restutil"
	"github.com/pledgechain/pledge/ledger"
	"github.com/pledgechain/pledge/log"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/tx"
	"github.com/pledgechain/pledge/txpool"
)

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	txQueueSize = 20
)

var logger = log.WithContext("pkg", "subscriptions")

type msgReader interface {
	Read() (msgs []interface{}, hasMore bool, err error)
}

// Subscriptions pushes ledger activity to websocket clients.
type Subscriptions struct {
	ldgr      *ledger.Ledger
	upgrader  *websocket.Upgrader
	pendingTx *pendingTx
	done      chan struct{}
	wg        sync.WaitGroup
}

func New(ldgr *ledger.Ledger, pool *txpool.TxPool) *Subscriptions {
	sub := &Subscriptions{
		ldgr: ldgr,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(_ *http.Request) bool {
				// origin is screened by the CORS layer upfront
				return true
			},
		},
		pendingTx: newPendingTx(pool),
		done:      make(chan struct{}),
	}
	sub.wg.Add(1)
	go func() {
		defer sub.wg.Done()
		sub.pendingTx.DispatchLoop(sub.done)
	}()
	return sub
}

func (s *Subscriptions) handleSubject(w http.ResponseWriter, req *http.Request) error {
	var reader msgReader
	switch mux.Vars(req)["subject"] {
	case "entry":
		position, err := s.parsePosition(req.URL.Query().Get("pos"))
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "pos"))
		}
		reader = newEntryReader(s.ldgr, position)
	case "transfer":
		var err error
		if reader, err = s.setupTransferListener(req); err != nil {
			return err
		}
	default:
		return restutil.HTTPError(errors.New("not found"), http.StatusNotFound)
	}

	conn, closed, err := s.setupConn(w, req)
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return err
	}

	err = s.pipe(conn, reader, closed)
	if err != nil {
		logger.Debug("error in websocket pipe", "err", err)
	}
	s.closeConn(conn, err)
	return nil
}

func (s *Subscriptions) setupTransferListener(req *http.Request) (msgReader, error) {
	query := req.URL.Query()
	position, err := s.parsePosition(query.Get("pos"))
	if err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "pos"))
	}
	txOrigin, err := parsePubkey(query.Get("txOrigin"))
	if err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "txOrigin"))
	}
	sender, err := parsePubkey(query.Get("sender"))
	if err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "sender"))
	}
	recipient, err := parsePubkey(query.Get("recipient"))
	if err != nil {
		return nil, restutil.BadRequest(errors.WithMessage(err, "recipient"))
	}
	return newTransferReader(s.ldgr, position, &TransferFilter{
		TxOrigin:  txOrigin,
		Sender:    sender,
		Recipient: recipient,
	}), nil
}

func (s *Subscriptions) handlePendingTransactions(w http.ResponseWriter, req *http.Request) error {
	conn, closed, err := s.setupConn(w, req)
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return err
	}

	txCh := make(chan *tx.Transaction, txQueueSize)
	s.pendingTx.Subscribe(txCh)
	defer s.pendingTx.Unsubscribe(txCh)

	err = s.pipePendingTxs(conn, txCh, closed)
	if err != nil {
		logger.Debug("error in websocket pipe", "err", err)
	}
	s.closeConn(conn, err)
	return nil
}

// parsePosition parses a ledger sequence number, empty means the head.
func (s *Subscriptions) parsePosition(posStr string) (uint64, error) {
	headSeq := s.ldgr.HeadSeq()
	if posStr == "" {
		return headSeq, nil
	}
	pos, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if pos > headSeq {
		return 0, errors.New("greater than the head sequence")
	}
	return pos, nil
}

func parsePubkey(keyStr string) (*pledge.Pubkey, error) {
	if keyStr == "" {
		return nil, nil
	}
	key, err := pledge.ParsePubkey(keyStr)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}

	closed := make(chan struct{})
	// the read pump detects the client going away
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err != nil {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	}
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait)); err != nil && err != websocket.ErrCloseSent {
		logger.Debug("failed to write close message", "err", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("failed to close the connection", "err", err)
	}
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader msgReader, closed chan struct{}) error {
	ticker := s.ldgr.NewTicker()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgs, hasMore, err := reader.Read()
		if err != nil {
			return errors.WithMessage(err, "read")
		}
		for _, msg := range msgs {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return errors.WithMessage(err, "write")
			}
		}
		if hasMore {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			default:
			}
		} else {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			case <-ticker.C():
			case <-pingTicker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return errors.WithMessage(err, "ping")
				}
			}
		}
	}
}

func (s *Subscriptions) pipePendingTxs(conn *websocket.Conn, txCh chan *tx.Transaction, closed chan struct{}) error {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case trx := <-txCh:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(&PendingTxIDMessage{ID: trx.ID()}); err != nil {
				return errors.WithMessage(err, "write")
			}
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return errors.WithMessage(err, "ping")
			}
		}
	}
}

// Close stops all active subscriptions and waits for them to drain.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/txpool").
		Methods(http.MethodGet).
		Name("subscriptions_pending_tx").
		HandlerFunc(restutil.WrapHandlerFunc(s.handlePendingTransactions))
	sub.Path("/{subject:entry|transfer}").
		Methods(http.MethodGet).
		Name("subscriptions_subject").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSubject))
}
