package handler

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

// Feed upgrades to a websocket that receives every change event of the board.
// The board must exist; unknown boards are refused before the upgrade.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "board")
	if _, err := h.board.Get(r.Context(), boardId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client
		logger.Log.Debug("feed upgrade failed", "board", boardId, "error", err)
		return
	}

	client, err := h.hub.Register(boardId, conn)
	if err != nil {
		logger.Log.Warn("feed subscription refused", "board", boardId, "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		_ = conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}

// checkOrigin accepts non-browser clients and the configured origins. With no
// origins configured only same-host browsers are accepted.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	allowed := h.cfg.Public.AllowedOrigins
	if slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}
