package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

// === Board Methods ===

func (c *APIClient) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	var resp api.BoardResponse
	if err := c.call(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(id), nil, http.StatusOK, &resp); err != nil {
		return domain.Board{}, fmt.Errorf("get board %s: %w", id, err)
	}
	return resp.Board, nil
}

// CreateBoard creates a board. An empty id lets the backend pick one.
func (c *APIClient) CreateBoard(ctx context.Context, id domain.BoardId, title string, description *string) (domain.Board, error) {
	req := api.CreateBoardRequest{Id: id, Title: title, Description: description}
	var resp api.BoardResponse
	if err := c.call(ctx, http.MethodPost, "/v1/boards", req, http.StatusCreated, &resp); err != nil {
		return domain.Board{}, fmt.Errorf("create board: %w", err)
	}
	return resp.Board, nil
}

func (c *APIClient) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	req := api.UpdateBoardRequest{Title: data.Title, Description: data.Description}
	var resp api.BoardResponse
	if err := c.call(ctx, http.MethodPatch, "/v1/boards/"+url.PathEscape(id), req, http.StatusOK, &resp); err != nil {
		return domain.Board{}, fmt.Errorf("update board %s: %w", id, err)
	}
	return resp.Board, nil
}

func (c *APIClient) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	if err := c.call(ctx, http.MethodDelete, "/v1/boards/"+url.PathEscape(id), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete board %s: %w", id, err)
	}
	return nil
}

// ListRecentBoards returns the most recently updated boards.
func (c *APIClient) ListRecentBoards(ctx context.Context, limit int) ([]domain.Board, error) {
	path := "/v1/boards"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var resp api.BoardListResponse
	if err := c.call(ctx, http.MethodGet, path, nil, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return resp.Boards, nil
}

// LoadBoard returns the board, creating it with the default title when it
// does not exist yet. A concurrent creator winning the race is not an error.
func (c *APIClient) LoadBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := c.GetBoard(ctx, id)
	if err == nil || !errors.Is(err, internal_errors.ErrNotFound) {
		return board, err
	}

	logger.Log.Info("provisioning board", "board", id)
	board, err = c.CreateBoard(ctx, id, domain.DefaultBoardTitle(id), nil)
	if err == nil {
		return board, nil
	}
	if !errors.Is(err, internal_errors.ErrConflict) {
		return domain.Board{}, err
	}
	return c.GetBoard(ctx, id)
}
