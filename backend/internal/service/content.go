package service

import (
	"context"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

// to mock service in tests
type ContentService interface {
	Create(ctx context.Context, viewer domain.Viewer, data domain.ContentItemCreationData) (domain.ContentItem, error)
	Get(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error)
	List(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error)
	Update(ctx context.Context, viewer domain.Viewer, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error)
	Delete(ctx context.Context, viewer domain.Viewer, id domain.ContentItemId) error
}

type ContentStorage interface {
	CreateContentItem(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error)
	GetContentItem(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error)
	ListContentItems(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error)
	UpdateContentItem(ctx context.Context, id domain.ContentItemId, owner domain.Identity, data domain.ContentItemUpdateData) (domain.ContentItem, error)
	DeleteContentItem(ctx context.Context, id domain.ContentItemId, owner domain.Identity) (domain.ContentItem, error)
	GetCategory(ctx context.Context, id domain.CategoryId) (domain.Category, error)
}

type Renderer interface {
	Render(text string) string
}

type Content struct {
	storage   ContentStorage
	renderer  Renderer
	publisher ChangePublisher
}

func NewContent(storage ContentStorage, renderer Renderer, publisher ChangePublisher) *Content {
	return &Content{storage: storage, renderer: renderer, publisher: publisher}
}

// Create posts a new item owned by the viewer's identity.
func (c *Content) Create(ctx context.Context, viewer domain.Viewer, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	if viewer.Identity == "" {
		return domain.ContentItem{}, &errors.ErrorWithStatusCode{Message: "Identity required", StatusCode: 401}
	}
	data.OwnerIdentifier = viewer.Identity
	if err := validation.ContentItem(data); err != nil {
		return domain.ContentItem{}, validationError(err)
	}
	if err := c.checkCategory(ctx, data.BoardId, data.CategoryId); err != nil {
		return domain.ContentItem{}, err
	}
	data.RenderedHTML = c.render(data.Type, data.Content)

	item, err := c.storage.CreateContentItem(ctx, data)
	if err != nil {
		return domain.ContentItem{}, err
	}
	c.publisher.Publish(ctx, item.BoardId, domain.ContentItemChange{Action: domain.OpInsert, Record: item})
	return item, nil
}

func (c *Content) Get(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error) {
	return c.storage.GetContentItem(ctx, id)
}

func (c *Content) List(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error) {
	return c.storage.ListContentItems(ctx, boardId)
}

// Update edits an item. Only the owner or an admin may do so; the storage
// repeats the owner check in the statement itself.
func (c *Content) Update(ctx context.Context, viewer domain.Viewer, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	current, err := c.storage.GetContentItem(ctx, id)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if !viewer.CanModify(current.OwnerIdentifier) {
		return domain.ContentItem{}, errors.Forbidden("Only the owner can modify this content item")
	}
	if err := validation.ContentItemUpdate(current, data); err != nil {
		return domain.ContentItem{}, validationError(err)
	}
	if data.ClearCategory {
		data.CategoryId = nil
	} else if err := c.checkCategory(ctx, current.BoardId, data.CategoryId); err != nil {
		return domain.ContentItem{}, err
	}
	if data.Content != nil {
		html := c.render(current.Type, *data.Content)
		data.RenderedHTML = &html
	}

	fields := fieldNames(map[string]bool{
		"category_id":   data.CategoryId != nil || data.ClearCategory,
		"content":       data.Content != nil,
		"author_name":   data.AuthorName != nil,
		"title":         data.Title != nil,
		"image_url":     data.ImageUrl != nil,
		"thumbnail_url": data.ThumbnailUrl != nil,
		"link_url":      data.LinkUrl != nil,
		"file_url":      data.FileUrl != nil,
		"file_name":     data.FileName != nil,
		"file_type":     data.FileType != nil,
		"file_size":     data.FileSize != nil,
	})
	if len(fields) == 0 {
		return domain.ContentItem{}, errors.BadRequest("Nothing to update")
	}

	item, err := c.storage.UpdateContentItem(ctx, id, ownerPredicate(viewer), data)
	if err != nil {
		return domain.ContentItem{}, err
	}
	c.publisher.Publish(ctx, item.BoardId, domain.ContentItemChange{Action: domain.OpUpdate, Record: item, Fields: fields})
	return item, nil
}

func (c *Content) Delete(ctx context.Context, viewer domain.Viewer, id domain.ContentItemId) error {
	if !viewer.IsAdmin() && viewer.Identity == "" {
		return &errors.ErrorWithStatusCode{Message: "Identity required", StatusCode: 401}
	}
	item, err := c.storage.DeleteContentItem(ctx, id, ownerPredicate(viewer))
	if err != nil {
		return err
	}
	c.publisher.Publish(ctx, item.BoardId, domain.ContentItemChange{Action: domain.OpDelete, Record: item})
	return nil
}

// checkCategory makes sure a target category exists on the item's board.
func (c *Content) checkCategory(ctx context.Context, boardId domain.BoardId, categoryId *domain.CategoryId) error {
	if categoryId == nil {
		return nil
	}
	category, err := c.storage.GetCategory(ctx, *categoryId)
	if err != nil {
		return err
	}
	if category.BoardId != boardId {
		return errors.BadRequest("Category belongs to another board")
	}
	return nil
}

func (c *Content) render(t domain.ContentType, content string) string {
	if t != domain.ContentText {
		return ""
	}
	return c.renderer.Render(content)
}

// ownerPredicate is the identity the storage filters on. Admins pass none.
func ownerPredicate(viewer domain.Viewer) domain.Identity {
	if viewer.IsAdmin() {
		return ""
	}
	return viewer.Identity
}
