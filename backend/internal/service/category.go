package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

// to mock service in tests
type CategoryService interface {
	Create(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error)
	List(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error)
	Update(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error)
	UpdatePosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error)
	Delete(ctx context.Context, id domain.CategoryId) error
}

type CategoryStorage interface {
	CreateCategory(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error)
	ListCategories(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error)
	UpdateCategoryPosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error)
	DeleteCategory(ctx context.Context, id domain.CategoryId) (domain.Category, error)
}

type Category struct {
	storage   CategoryStorage
	publisher ChangePublisher
}

func NewCategory(storage CategoryStorage, publisher ChangePublisher) *Category {
	return &Category{storage: storage, publisher: publisher}
}

func (c *Category) Create(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	data.Name = strings.TrimSpace(data.Name)
	if err := validation.CategoryName(data.Name); err != nil {
		return domain.Category{}, validationError(err)
	}
	if data.Color == "" {
		data.Color = domain.DefaultCategoryColor
	}
	if err := validation.Color(data.Color); err != nil {
		return domain.Category{}, validationError(err)
	}
	if data.Position != nil && *data.Position < 0 {
		return domain.Category{}, errors.BadRequest("Position must not be negative")
	}

	category, err := c.storage.CreateCategory(ctx, data)
	if err != nil {
		return domain.Category{}, err
	}
	c.publisher.Publish(ctx, category.BoardId, domain.CategoryChange{Action: domain.OpInsert, Record: category})
	return category, nil
}

func (c *Category) List(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error) {
	return c.storage.ListCategories(ctx, boardId)
}

func (c *Category) Update(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	if data.Name != nil {
		name := strings.TrimSpace(*data.Name)
		data.Name = &name
		if err := validation.CategoryName(name); err != nil {
			return domain.Category{}, validationError(err)
		}
	}
	if data.Color != nil {
		if err := validation.Color(*data.Color); err != nil {
			return domain.Category{}, validationError(err)
		}
	}
	fields := fieldNames(map[string]bool{
		"name":        data.Name != nil,
		"description": data.Description != nil,
		"color":       data.Color != nil,
		"is_hidden":   data.IsHidden != nil,
	})
	if len(fields) == 0 {
		return domain.Category{}, errors.BadRequest("Nothing to update")
	}

	category, err := c.storage.UpdateCategory(ctx, id, data)
	if err != nil {
		return domain.Category{}, err
	}
	c.publisher.Publish(ctx, category.BoardId, domain.CategoryChange{Action: domain.OpUpdate, Record: category, Fields: fields})
	return category, nil
}

// UpdatePosition moves one category. Reordering a board is a sequence of
// these calls issued by the client, one per sibling.
func (c *Category) UpdatePosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error) {
	if position < 0 {
		return domain.Category{}, errors.BadRequest("Position must not be negative")
	}
	category, err := c.storage.UpdateCategoryPosition(ctx, boardId, id, position)
	if err != nil {
		return domain.Category{}, err
	}
	c.publisher.Publish(ctx, category.BoardId, domain.CategoryChange{Action: domain.OpUpdate, Record: category, Fields: []string{"position"}})
	return category, nil
}

// Delete removes the category. Its content items go with it; subscribers
// drop them on the category delete event.
func (c *Category) Delete(ctx context.Context, id domain.CategoryId) error {
	category, err := c.storage.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	c.publisher.Publish(ctx, category.BoardId, domain.CategoryChange{Action: domain.OpDelete, Record: category})
	return nil
}
