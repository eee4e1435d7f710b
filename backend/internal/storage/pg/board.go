package pg

import (
	"context"
	"fmt"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	sharedpg "github.com/itchan-dev/simpleboard/shared/storage/pg"
)

const boardColumns = "id, title, description, created_by, created_at, updated_at"

func scanBoard(row scanner) (domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.Id, &b.Title, &b.Description, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx, `
		INSERT INTO boards (id, title, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING `+boardColumns,
		data.Id, data.Title, data.Description, data.CreatedBy))
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.Board{}, internal_errors.Conflict(fmt.Sprintf("Board %s already exists", data.Id))
		}
		return domain.Board{}, fmt.Errorf("insert board: %w", err)
	}
	return board, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx, "SELECT "+boardColumns+" FROM boards WHERE id = $1", id))
	if err != nil {
		return domain.Board{}, notFound(err, "Board")
	}
	return board, nil
}

// ListRecentBoards returns up to limit boards, newest first.
func (s *Storage) ListRecentBoards(ctx context.Context, limit int) ([]domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+boardColumns+" FROM boards ORDER BY created_at DESC, id LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Storage) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx, `
		UPDATE boards SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			updated_at = now()
		WHERE id = $1
		RETURNING `+boardColumns,
		id, data.Title, data.Description))
	if err != nil {
		return domain.Board{}, notFound(err, "Board")
	}
	return board, nil
}

// DeleteBoard removes the board; categories, items and likes go with it.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx, "DELETE FROM boards WHERE id = $1 RETURNING "+boardColumns, id))
	if err != nil {
		return domain.Board{}, notFound(err, "Board")
	}
	return board, nil
}
