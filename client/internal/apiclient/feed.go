package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

const (
	// The backend pings every 54s; anything silent for longer is dead.
	feedReadTimeout = 90 * time.Second
	feedWriteWait   = 10 * time.Second
)

// Subscribe follows the board's change feed until ctx is done, redialing with
// the client's Retryer when the connection drops. onEvent is called for every
// event in arrival order. onReconnect, if set, is called after every
// connection but the first, since events sent while disconnected are lost.
// An unknown board is reported immediately as ErrNotFound.
func (c *APIClient) Subscribe(ctx context.Context, boardId domain.BoardId, onEvent func(domain.ChangeEvent), onReconnect func()) error {
	log := logger.With("feed").With("board", boardId)
	connected := false
	attempt := 0

	for {
		conn, err := c.dialFeed(ctx, boardId)
		if err == nil {
			c.Retryer.Reset()
			attempt = 0
			if connected && onReconnect != nil {
				onReconnect()
			}
			connected = true
			log.Debug("feed connected")
			err = readFeed(ctx, conn, onEvent)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, internal_errors.ErrNotFound) || errors.Is(err, internal_errors.ErrForbidden) {
			return err
		}

		delay, ok := c.Retryer.NextDelay(attempt, err)
		if !ok {
			return fmt.Errorf("feed %s: giving up after %d attempts: %w", boardId, attempt, err)
		}
		attempt++
		log.Warn("feed disconnected, reconnecting", "error", err, "attempt", attempt, "delay", delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *APIClient) dialFeed(ctx context.Context, boardId domain.BoardId) (*websocket.Conn, error) {
	u, err := url.Parse(c.BaseURL + "/v1/boards/" + url.PathEscape(boardId) + "/feed")
	if err != nil {
		return nil, fmt.Errorf("feed url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	header := http.Header{}
	c.authorize(header)

	conn, resp, err := c.Dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusSwitchingProtocols {
				return nil, statusError(resp)
			}
		}
		return nil, internal_errors.Network("feed unavailable: " + err.Error())
	}
	return conn, nil
}

// readFeed delivers events until the connection fails or ctx is done.
func readFeed(ctx context.Context, conn *websocket.Conn, onEvent func(domain.ChangeEvent)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(feedWriteWait))
			_ = conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(feedReadTimeout))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(feedReadTimeout))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(feedWriteWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return internal_errors.Network("feed closed: " + err.Error())
		}
		_ = conn.SetReadDeadline(time.Now().Add(feedReadTimeout))

		var ev domain.ChangeEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			logger.Log.Warn("malformed feed event", "error", err)
			continue
		}
		onEvent(ev)
	}
}
