package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardCreate(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		input     domain.BoardCreationData
		mockError error
		wantErr   error
		check     func(t *testing.T, b domain.Board)
	}{
		{
			name:  "explicit id and title",
			input: domain.BoardCreationData{Id: "b1", Title: " Team "},
			check: func(t *testing.T, b domain.Board) {
				assert.Equal(t, "b1", b.Id)
				assert.Equal(t, "Team", b.Title)
			},
		},
		{
			name:  "generated id",
			input: domain.BoardCreationData{Title: "x"},
			check: func(t *testing.T, b domain.Board) { assert.Len(t, b.Id, 8) },
		},
		{
			name:  "auto-provision title",
			input: domain.BoardCreationData{Id: "abc123"},
			check: func(t *testing.T, b domain.Board) { assert.Equal(t, "Board abc123", b.Title) },
		},
		{name: "invalid id", input: domain.BoardCreationData{Id: "no spaces", Title: "x"}, wantErr: internal_errors.ErrValidation},
		{name: "title too long", input: domain.BoardCreationData{Id: "b1", Title: strings.Repeat("a", 501)}, wantErr: internal_errors.ErrValidation},
		{name: "duplicate", input: domain.BoardCreationData{Id: "b1", Title: "x"}, mockError: internal_errors.Conflict("exists"), wantErr: internal_errors.ErrConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			publisher := &MockPublisher{}
			storage := &MockBoardStorage{}
			if tc.mockError != nil {
				storage.createBoardFunc = func(context.Context, domain.BoardCreationData) (domain.Board, error) {
					return domain.Board{}, tc.mockError
				}
			}
			service := NewBoard(storage, &MockBoardMedia{}, publisher, 10)

			board, err := service.Create(ctx, tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, publisher.published())
				return
			}
			require.NoError(t, err)
			tc.check(t, board)
			require.Len(t, publisher.published(), 1)
			assert.Equal(t, domain.OpInsert, publisher.published()[0].Operation())
		})
	}
}

func TestBoardGet(t *testing.T) {
	storage := &MockBoardStorage{}
	service := NewBoard(storage, &MockBoardMedia{}, &MockPublisher{}, 10)

	board, err := service.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", board.Id)

	_, err = service.Get(context.Background(), "../etc")
	assert.ErrorIs(t, err, internal_errors.ErrNotFound)
}

func TestBoardListRecent(t *testing.T) {
	var gotLimit int
	storage := &MockBoardStorage{listRecentBoardsFunc: func(_ context.Context, limit int) ([]domain.Board, error) {
		gotLimit = limit
		return []domain.Board{{Id: "b1"}}, nil
	}}
	service := NewBoard(storage, &MockBoardMedia{}, &MockPublisher{}, 10)

	for _, tc := range []struct{ in, want int }{{0, 10}, {-1, 10}, {5, 5}, {500, 10}} {
		_, err := service.ListRecent(context.Background(), tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, gotLimit, "limit %d", tc.in)
	}
}

func TestBoardUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes changed fields", func(t *testing.T) {
		publisher := &MockPublisher{}
		service := NewBoard(&MockBoardStorage{}, &MockBoardMedia{}, publisher, 10)

		_, err := service.Update(ctx, "b1", domain.BoardUpdateData{Title: ptr("New"), Description: ptr("d")})
		require.NoError(t, err)

		changes := publisher.published()
		require.Len(t, changes, 1)
		bc := changes[0].(domain.BoardChange)
		assert.Equal(t, []string{"description", "title"}, bc.Fields)
	})

	t.Run("empty title", func(t *testing.T) {
		service := NewBoard(&MockBoardStorage{}, &MockBoardMedia{}, &MockPublisher{}, 10)
		_, err := service.Update(ctx, "b1", domain.BoardUpdateData{Title: ptr("  ")})
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
	})

	t.Run("nothing to update", func(t *testing.T) {
		service := NewBoard(&MockBoardStorage{}, &MockBoardMedia{}, &MockPublisher{}, 10)
		_, err := service.Update(ctx, "b1", domain.BoardUpdateData{})
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
	})
}

func TestBoardDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes media and publishes", func(t *testing.T) {
		var deletedMedia string
		publisher := &MockPublisher{}
		media := &MockBoardMedia{deleteBoardFunc: func(id string) error { deletedMedia = id; return nil }}
		service := NewBoard(&MockBoardStorage{}, media, publisher, 10)

		require.NoError(t, service.Delete(ctx, "b1"))
		assert.Equal(t, "b1", deletedMedia)
		require.Len(t, publisher.published(), 1)
		assert.Equal(t, domain.OpDelete, publisher.published()[0].Operation())
	})

	t.Run("media failure does not fail the delete", func(t *testing.T) {
		media := &MockBoardMedia{deleteBoardFunc: func(string) error { return errors.New("disk") }}
		service := NewBoard(&MockBoardStorage{}, media, &MockPublisher{}, 10)
		assert.NoError(t, service.Delete(ctx, "b1"))
	})

	t.Run("missing board", func(t *testing.T) {
		storage := &MockBoardStorage{deleteBoardFunc: func(context.Context, domain.BoardId) (domain.Board, error) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}}
		publisher := &MockPublisher{}
		service := NewBoard(storage, &MockBoardMedia{}, publisher, 10)
		assert.ErrorIs(t, service.Delete(ctx, "b1"), internal_errors.ErrNotFound)
		assert.Empty(t, publisher.published())
	})
}
