package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
)

// === Content Item Methods ===

// ListContentItems returns the board's items, most recently updated first,
// with their like counts.
func (c *APIClient) ListContentItems(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error) {
	var resp api.ContentItemListResponse
	if err := c.call(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(boardId)+"/items", nil, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	domain.SortByRecency(resp.Items)
	return resp.Items, nil
}

func (c *APIClient) GetContentItem(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error) {
	var resp api.ContentItemResponse
	if err := c.call(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(id), nil, http.StatusOK, &resp); err != nil {
		return domain.ContentItem{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return resp.ContentItem, nil
}

// CreateContentItem posts a new item. The owner is taken from the identity
// header by the backend, not from data.
func (c *APIClient) CreateContentItem(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	req := api.CreateContentItemRequest{
		CategoryId:     data.CategoryId,
		Type:           string(data.Type),
		Content:        data.Content,
		AuthorName:     data.AuthorName,
		ContentPayload: api.PayloadFromDomain(data.ContentPayload),
	}
	var resp api.ContentItemResponse
	if err := c.call(ctx, http.MethodPost, "/v1/boards/"+url.PathEscape(data.BoardId)+"/items", req, http.StatusCreated, &resp); err != nil {
		return domain.ContentItem{}, fmt.Errorf("create item: %w", err)
	}
	return resp.ContentItem, nil
}

func (c *APIClient) UpdateContentItem(ctx context.Context, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	req := api.UpdateContentItemRequest{
		CategoryId:     data.CategoryId,
		ClearCategory:  data.ClearCategory,
		Content:        data.Content,
		AuthorName:     data.AuthorName,
		ContentPayload: api.PayloadFromDomain(data.ContentPayload),
	}
	var resp api.ContentItemResponse
	if err := c.call(ctx, http.MethodPatch, "/v1/items/"+url.PathEscape(id), req, http.StatusOK, &resp); err != nil {
		return domain.ContentItem{}, fmt.Errorf("update item %s: %w", id, err)
	}
	return resp.ContentItem, nil
}

func (c *APIClient) DeleteContentItem(ctx context.Context, id domain.ContentItemId) error {
	if err := c.call(ctx, http.MethodDelete, "/v1/items/"+url.PathEscape(id), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}
