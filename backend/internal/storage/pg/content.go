package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
	sharedpg "github.com/itchan-dev/simpleboard/shared/storage/pg"
)

const itemColumns = `id, board_id, category_id, type, content, title,
	image_url, thumbnail_url, link_url, file_url, file_name, file_type, file_size,
	author_name, owner_identifier, rendered_html, created_at, updated_at`

// itemStats computes like_count and age_seconds for a content_items row.
const itemStats = `(SELECT COUNT(*) FROM user_likes ul WHERE ul.content_item_id = content_items.id)::int,
	EXTRACT(EPOCH FROM (now() - content_items.created_at))::bigint`

func scanContentItem(row scanner) (domain.ContentItem, error) {
	var c domain.ContentItem
	err := row.Scan(
		&c.Id, &c.BoardId, &c.CategoryId, &c.Type, &c.Content, &c.Title,
		&c.ImageUrl, &c.ThumbnailUrl, &c.LinkUrl, &c.FileUrl, &c.FileName, &c.FileType, &c.FileSize,
		&c.AuthorName, &c.OwnerIdentifier, &c.RenderedHTML, &c.CreatedAt, &c.UpdatedAt,
		&c.LikeCount, &c.AgeSeconds,
	)
	return c, err
}

func (s *Storage) CreateContentItem(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	item, err := scanContentItem(s.db.QueryRowContext(ctx, `
		INSERT INTO content_items (
			board_id, category_id, type, content, title,
			image_url, thumbnail_url, link_url, file_url, file_name, file_type, file_size,
			author_name, owner_identifier, rendered_html
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+itemColumns+`, `+itemStats,
		data.BoardId, data.CategoryId, data.Type, data.Content, data.Title,
		data.ImageUrl, data.ThumbnailUrl, data.LinkUrl, data.FileUrl, data.FileName, data.FileType, data.FileSize,
		data.AuthorName, data.OwnerIdentifier, data.RenderedHTML,
	))
	if err != nil {
		if sharedpg.IsForeignKeyViolation(err) {
			return domain.ContentItem{}, internal_errors.NotFound("Board or category not found")
		}
		return domain.ContentItem{}, fmt.Errorf("insert content item: %w", err)
	}
	return item, nil
}

func (s *Storage) GetContentItem(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error) {
	item, err := scanContentItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+", "+itemStats+" FROM content_items WHERE id = $1", id))
	if err != nil {
		return domain.ContentItem{}, notFound(err, "Content item")
	}
	return item, nil
}

// ListContentItems returns the board's items newest first with like counts.
// It reads the content_items_with_likes view and aggregates by hand when the
// view does not exist.
func (s *Storage) ListContentItems(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error) {
	items, err := s.queryContentItems(ctx, `
		SELECT `+itemColumns+`, like_count, age_seconds FROM `+s.itemsView+`
		WHERE board_id = $1
		ORDER BY created_at DESC, id`, boardId)
	if sharedpg.IsUndefinedTable(err) {
		logger.Log.Warn("likes view missing, counting manually", "view", s.itemsView)
		items, err = s.queryContentItems(ctx, `
			SELECT `+itemColumns+`, `+itemStats+` FROM content_items
			WHERE board_id = $1
			ORDER BY created_at DESC, id`, boardId)
	}
	return items, err
}

func (s *Storage) queryContentItems(ctx context.Context, query string, args ...any) ([]domain.ContentItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ContentItem{}
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateContentItem applies data to the item. A non-empty owner restricts the
// update to items owned by that identity; admins pass an empty owner.
func (s *Storage) UpdateContentItem(ctx context.Context, id domain.ContentItemId, owner domain.Identity, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	item, err := scanContentItem(s.db.QueryRowContext(ctx, `
		UPDATE content_items SET
			category_id = CASE WHEN $3 THEN NULL ELSE COALESCE($4, category_id) END,
			content = COALESCE($5, content),
			author_name = COALESCE($6, author_name),
			rendered_html = COALESCE($7, rendered_html),
			title = COALESCE($8, title),
			image_url = COALESCE($9, image_url),
			thumbnail_url = COALESCE($10, thumbnail_url),
			link_url = COALESCE($11, link_url),
			file_url = COALESCE($12, file_url),
			file_name = COALESCE($13, file_name),
			file_type = COALESCE($14, file_type),
			file_size = COALESCE($15, file_size),
			updated_at = now()
		WHERE id = $1 AND ($2 = '' OR owner_identifier = $2)
		RETURNING `+itemColumns+`, `+itemStats,
		id, owner, data.ClearCategory, data.CategoryId, data.Content, data.AuthorName, data.RenderedHTML,
		data.Title, data.ImageUrl, data.ThumbnailUrl, data.LinkUrl, data.FileUrl, data.FileName, data.FileType, data.FileSize,
	))
	if err == nil {
		return item, nil
	}
	if sharedpg.IsForeignKeyViolation(err) {
		return domain.ContentItem{}, internal_errors.NotFound("Category not found")
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ContentItem{}, ownedRowMissing(ctx, s.db, "content_items", id, "content item")
	}
	return domain.ContentItem{}, err
}

// DeleteContentItem removes the item under the same owner rule as UpdateContentItem.
func (s *Storage) DeleteContentItem(ctx context.Context, id domain.ContentItemId, owner domain.Identity) (domain.ContentItem, error) {
	item, err := scanContentItem(s.db.QueryRowContext(ctx, `
		DELETE FROM content_items
		WHERE id = $1 AND ($2 = '' OR owner_identifier = $2)
		RETURNING `+itemColumns+`, `+itemStats,
		id, owner))
	if err == nil {
		return item, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ContentItem{}, ownedRowMissing(ctx, s.db, "content_items", id, "content item")
	}
	return domain.ContentItem{}, err
}
