package pg

import (
	"context"
	"fmt"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	sharedpg "github.com/itchan-dev/simpleboard/shared/storage/pg"
)

const categoryColumns = "id, board_id, name, description, color, position, is_hidden, created_by, created_at, updated_at"

func scanCategory(row scanner) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.Id, &c.BoardId, &c.Name, &c.Description, &c.Color, &c.Position, &c.IsHidden, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *Storage) CreateCategory(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	category, err := scanCategory(s.db.QueryRowContext(ctx, `
		INSERT INTO categories (board_id, name, description, color, position, created_by)
		VALUES ($1, $2, $3, $4,
			COALESCE($5, (SELECT COALESCE(MAX(position) + 1, 0) FROM categories WHERE board_id = $1)),
			$6)
		RETURNING `+categoryColumns,
		data.BoardId, data.Name, data.Description, data.Color, data.Position, data.CreatedBy))
	if err != nil {
		if sharedpg.IsForeignKeyViolation(err) {
			return domain.Category{}, internal_errors.NotFound("Board not found")
		}
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

func (s *Storage) GetCategory(ctx context.Context, id domain.CategoryId) (domain.Category, error) {
	category, err := scanCategory(s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id))
	if err != nil {
		return domain.Category{}, notFound(err, "Category")
	}
	return category, nil
}

// ListCategories returns the board's categories by position, ties by creation time and id.
func (s *Storage) ListCategories(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE board_id = $1
		ORDER BY position, created_at, id`, boardId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	category, err := scanCategory(s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			color = COALESCE($4, color),
			is_hidden = COALESCE($5, is_hidden),
			updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, data.Name, data.Description, data.Color, data.IsHidden))
	if err != nil {
		return domain.Category{}, notFound(err, "Category")
	}
	return category, nil
}

// UpdateCategoryPosition moves one category. It is scoped to boardId so a
// stale client cannot reposition another board's category.
func (s *Storage) UpdateCategoryPosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error) {
	category, err := scanCategory(s.db.QueryRowContext(ctx, `
		UPDATE categories SET position = $3, updated_at = now()
		WHERE id = $1 AND board_id = $2
		RETURNING `+categoryColumns,
		id, boardId, position))
	if err != nil {
		return domain.Category{}, notFound(err, "Category")
	}
	return category, nil
}

// DeleteCategory removes the category and, by cascade, its content items.
func (s *Storage) DeleteCategory(ctx context.Context, id domain.CategoryId) (domain.Category, error) {
	category, err := scanCategory(s.db.QueryRowContext(ctx, "DELETE FROM categories WHERE id = $1 RETURNING "+categoryColumns, id))
	if err != nil {
		return domain.Category{}, notFound(err, "Category")
	}
	return category, nil
}
