package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

const (
	maxConnsPerBoard = 500
	maxTotalConns    = 10000
)

var (
	ErrBoardConnLimit  = errors.New("board connection limit reached")
	ErrServerConnLimit = errors.New("server connection limit reached")
)

// Hub maps board id to its websocket subscribers.
type Hub struct {
	mu         sync.RWMutex
	conns      map[domain.BoardId]map[*Client]struct{}
	totalConns int
}

func NewHub() *Hub {
	return &Hub{conns: make(map[domain.BoardId]map[*Client]struct{})}
}

// Register attaches conn to the board. The caller runs the client's pumps.
func (h *Hub) Register(boardId domain.BoardId, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, ErrServerConnLimit
	}
	m, ok := h.conns[boardId]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[boardId] = m
	}
	if len(m) >= maxConnsPerBoard {
		return nil, ErrBoardConnLimit
	}

	client := newClient(h, conn, boardId)
	m[client] = struct{}{}
	h.totalConns++
	feedConnections.Inc()
	return client, nil
}

// UnregisterClient detaches the client and closes its send channel. Calling
// it twice is harmless.
func (h *Hub) UnregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[c.boardId]
	if !ok {
		return
	}
	if _, exists := m[c]; !exists {
		return
	}
	delete(m, c)
	close(c.send)
	h.totalConns--
	feedConnections.Dec()
	if len(m) == 0 {
		delete(h.conns, c.boardId)
	}
}

// Broadcast queues payload for every subscriber of the board. Subscribers
// whose buffer is full are disconnected; they reload after resubscribing.
func (h *Hub) Broadcast(boardId domain.BoardId, payload []byte) {
	var slow []*Client

	h.mu.RLock()
	for c := range h.conns[boardId] {
		if !c.trySend(payload) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		feedSlowClientDrops.Inc()
		logger.Log.Warn("feed subscriber too slow, disconnecting", "board", boardId)
		h.UnregisterClient(c)
	}
}

// Subscribers returns the number of open connections on the board.
func (h *Hub) Subscribers(boardId domain.BoardId) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[boardId])
}

// Start connects the hub to the broker.
func (h *Hub) Start(ctx context.Context, broker Broker) error {
	return broker.Start(ctx, h.Broadcast)
}

// Shutdown closes every connection with a going-away frame.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for boardId, clients := range h.conns {
		for c := range clients {
			if c.conn == nil {
				close(c.send)
				feedConnections.Dec()
				continue
			}
			if err := c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait)); err != nil {
				logger.Log.Debug("write close frame", "board", boardId, "error", err)
			}
			_ = c.conn.Close()
			close(c.send)
			feedConnections.Dec()
		}
		delete(h.conns, boardId)
	}
	h.totalConns = 0
	return nil
}
