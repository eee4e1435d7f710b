package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	Get(ctx context.Context, id domain.BoardId) (domain.Board, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Board, error)
	Update(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	Delete(ctx context.Context, id domain.BoardId) error
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	ListRecentBoards(ctx context.Context, limit int) ([]domain.Board, error)
	UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
}

// BoardMedia drops the stored objects of a deleted board.
type BoardMedia interface {
	DeleteBoard(boardID string) error
}

type Board struct {
	storage     BoardStorage
	media       BoardMedia
	publisher   ChangePublisher
	recentLimit int
}

func NewBoard(storage BoardStorage, media BoardMedia, publisher ChangePublisher, recentLimit int) *Board {
	return &Board{storage: storage, media: media, publisher: publisher, recentLimit: recentLimit}
}

// Create stores a new board. An empty id gets a generated one and an empty
// title defaults to "Board <id>", which is how boards are auto-provisioned.
func (b *Board) Create(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	if data.Id == "" {
		data.Id = domain.NewBoardId()
	}
	if !domain.ValidBoardId(data.Id) {
		return domain.Board{}, errors.BadRequest("Board id may contain only letters, digits and dashes")
	}
	data.Title = strings.TrimSpace(data.Title)
	if data.Title == "" {
		data.Title = domain.DefaultBoardTitle(data.Id)
	}
	if err := validateBoard(data.Title, data.Description); err != nil {
		return domain.Board{}, err
	}

	board, err := b.storage.CreateBoard(ctx, data)
	if err != nil {
		return domain.Board{}, err
	}
	b.publisher.Publish(ctx, board.Id, domain.BoardChange{Action: domain.OpInsert, Record: board})
	return board, nil
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if !domain.ValidBoardId(id) {
		return domain.Board{}, errors.NotFound("Board not found")
	}
	return b.storage.GetBoard(ctx, id)
}

// ListRecent clamps limit to the configured maximum.
func (b *Board) ListRecent(ctx context.Context, limit int) ([]domain.Board, error) {
	if limit <= 0 || limit > b.recentLimit {
		limit = b.recentLimit
	}
	return b.storage.ListRecentBoards(ctx, limit)
}

func (b *Board) Update(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	if data.Title != nil {
		title := strings.TrimSpace(*data.Title)
		data.Title = &title
		if err := validation.BoardTitle(title); err != nil {
			return domain.Board{}, validationError(err)
		}
	}
	if err := validation.BoardDescription(data.Description); err != nil {
		return domain.Board{}, validationError(err)
	}
	fields := fieldNames(map[string]bool{"title": data.Title != nil, "description": data.Description != nil})
	if len(fields) == 0 {
		return domain.Board{}, errors.BadRequest("Nothing to update")
	}

	board, err := b.storage.UpdateBoard(ctx, id, data)
	if err != nil {
		return domain.Board{}, err
	}
	b.publisher.Publish(ctx, board.Id, domain.BoardChange{Action: domain.OpUpdate, Record: board, Fields: fields})
	return board, nil
}

// Delete removes the board with everything on it, including uploaded media.
func (b *Board) Delete(ctx context.Context, id domain.BoardId) error {
	board, err := b.storage.DeleteBoard(ctx, id)
	if err != nil {
		return err
	}
	if err := b.media.DeleteBoard(board.Id); err != nil {
		logger.Log.Error("failed to delete board media", "board", board.Id, "error", err)
	}
	b.publisher.Publish(ctx, board.Id, domain.BoardChange{Action: domain.OpDelete, Record: board})
	return nil
}

func validateBoard(title string, description *string) error {
	if err := validation.BoardTitle(title); err != nil {
		return validationError(err)
	}
	if err := validation.BoardDescription(description); err != nil {
		return validationError(err)
	}
	return nil
}
