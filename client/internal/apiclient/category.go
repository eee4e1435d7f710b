package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
)

// === Category Methods ===

// ListCategories returns the board's categories ordered by position.
func (c *APIClient) ListCategories(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error) {
	var resp api.CategoryListResponse
	if err := c.call(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(boardId)+"/categories", nil, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	domain.SortCategories(resp.Categories)
	return resp.Categories, nil
}

func (c *APIClient) CreateCategory(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	req := api.CreateCategoryRequest{
		Name:        data.Name,
		Description: data.Description,
		Color:       data.Color,
		Position:    data.Position,
	}
	var resp api.CategoryResponse
	if err := c.call(ctx, http.MethodPost, "/v1/boards/"+url.PathEscape(data.BoardId)+"/categories", req, http.StatusCreated, &resp); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return resp.Category, nil
}

func (c *APIClient) UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	req := api.UpdateCategoryRequest{
		Name:        data.Name,
		Description: data.Description,
		Color:       data.Color,
		IsHidden:    data.IsHidden,
	}
	var resp api.CategoryResponse
	if err := c.call(ctx, http.MethodPatch, "/v1/categories/"+url.PathEscape(id), req, http.StatusOK, &resp); err != nil {
		return domain.Category{}, fmt.Errorf("update category %s: %w", id, err)
	}
	return resp.Category, nil
}

func (c *APIClient) UpdateCategoryPosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error) {
	req := api.UpdateCategoryPositionRequest{BoardId: boardId, Position: &position}
	var resp api.CategoryResponse
	if err := c.call(ctx, http.MethodPut, "/v1/categories/"+url.PathEscape(id)+"/position", req, http.StatusOK, &resp); err != nil {
		return domain.Category{}, fmt.Errorf("move category %s: %w", id, err)
	}
	return resp.Category, nil
}

func (c *APIClient) DeleteCategory(ctx context.Context, id domain.CategoryId) error {
	if err := c.call(ctx, http.MethodDelete, "/v1/categories/"+url.PathEscape(id), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
