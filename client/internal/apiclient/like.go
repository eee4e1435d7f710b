package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
)

// === Like Methods ===

func (c *APIClient) LikeStatus(ctx context.Context, itemId domain.ContentItemId) (api.LikeStatusResponse, error) {
	var resp api.LikeStatusResponse
	if err := c.call(ctx, http.MethodGet, likesPath(itemId), nil, http.StatusOK, &resp); err != nil {
		return resp, fmt.Errorf("like status %s: %w", itemId, err)
	}
	return resp, nil
}

// HasLiked reports whether the current identity has liked the item.
func (c *APIClient) HasLiked(ctx context.Context, itemId domain.ContentItemId) (bool, error) {
	status, err := c.LikeStatus(ctx, itemId)
	return status.Liked, err
}

func (c *APIClient) CountLikes(ctx context.Context, itemId domain.ContentItemId) (int, error) {
	status, err := c.LikeStatus(ctx, itemId)
	return status.Count, err
}

// AddLike likes the item if the identity has not already. added is false for
// a duplicate.
func (c *APIClient) AddLike(ctx context.Context, itemId domain.ContentItemId) (bool, error) {
	var resp api.AddLikeResponse
	if err := c.call(ctx, http.MethodPost, likesPath(itemId), nil, http.StatusOK, &resp); err != nil {
		return false, fmt.Errorf("like %s: %w", itemId, err)
	}
	return resp.Added, nil
}

func (c *APIClient) RemoveLike(ctx context.Context, itemId domain.ContentItemId) (bool, error) {
	var resp api.RemoveLikeResponse
	if err := c.call(ctx, http.MethodDelete, likesPath(itemId), nil, http.StatusOK, &resp); err != nil {
		return false, fmt.Errorf("unlike %s: %w", itemId, err)
	}
	return resp.Removed, nil
}

func likesPath(itemId domain.ContentItemId) string {
	return "/v1/items/" + url.PathEscape(itemId) + "/likes"
}
