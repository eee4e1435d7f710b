package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/itchan-dev/simpleboard/backend/internal/feed"
	"github.com/itchan-dev/simpleboard/backend/internal/service"
	"github.com/itchan-dev/simpleboard/shared/config"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

// HealthChecker reports whether the backing store answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	board    service.BoardService
	category service.CategoryService
	content  service.ContentService
	like     service.LikeService
	media    service.MediaService
	hub      *feed.Hub
	health   HealthChecker
	cfg      *config.Config
	upgrader websocket.Upgrader
}

// Services groups the service layer handed to the handlers.
type Services struct {
	Auth     service.AuthService
	Board    service.BoardService
	Category service.CategoryService
	Content  service.ContentService
	Like     service.LikeService
	Media    service.MediaService
}

func New(s Services, hub *feed.Hub, health HealthChecker, cfg *config.Config) *Handler {
	h := &Handler{
		auth:     s.Auth,
		board:    s.Board,
		category: s.Category,
		content:  s.Content,
		like:     s.Like,
		media:    s.Media,
		hub:      hub,
		health:   health,
		cfg:      cfg,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
