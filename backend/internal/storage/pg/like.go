package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	sharedpg "github.com/itchan-dev/simpleboard/shared/storage/pg"
)

const likeColumns = "id, content_item_id, user_identifier, created_at"

func scanLike(row scanner) (domain.Like, error) {
	var l domain.Like
	err := row.Scan(&l.Id, &l.ContentItemId, &l.UserIdentifier, &l.CreatedAt)
	return l, err
}

// AddLike inserts the like unless the pair already exists. added is false
// for the no-op case.
func (s *Storage) AddLike(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (like domain.Like, added bool, err error) {
	like, err = scanLike(s.db.QueryRowContext(ctx, `
		INSERT INTO user_likes (content_item_id, user_identifier)
		VALUES ($1, $2)
		ON CONFLICT (content_item_id, user_identifier) DO NOTHING
		RETURNING `+likeColumns,
		itemId, user))
	switch {
	case err == nil:
		return like, true, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.Like{}, false, nil
	case sharedpg.IsForeignKeyViolation(err):
		return domain.Like{}, false, internal_errors.NotFound("Content item not found")
	default:
		return domain.Like{}, false, fmt.Errorf("insert like: %w", err)
	}
}

// RemoveLike deletes the pair if present. removed is false when there was nothing to delete.
func (s *Storage) RemoveLike(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (like domain.Like, removed bool, err error) {
	like, err = scanLike(s.db.QueryRowContext(ctx, `
		DELETE FROM user_likes
		WHERE content_item_id = $1 AND user_identifier = $2
		RETURNING `+likeColumns,
		itemId, user))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Like{}, false, nil
	}
	if err != nil {
		return domain.Like{}, false, err
	}
	return like, true, nil
}

func (s *Storage) LikeStatus(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.LikeStatus, error) {
	var status domain.LikeStatus
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*)::int,
			COALESCE(bool_or(user_identifier = $2), false)
		FROM user_likes
		WHERE content_item_id = $1`,
		itemId, user).Scan(&status.Count, &status.Liked)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	return status, nil
}
