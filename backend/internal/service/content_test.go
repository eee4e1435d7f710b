package service

import (
	"context"
	"testing"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = domain.Viewer{Identity: "owner"}
	stranger = domain.Viewer{Identity: "stranger"}
	admin    = domain.Viewer{Identity: "someone", Admin: &domain.Admin{Email: "a@example.com"}}
)

func TestContentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("text item is rendered and owned by the viewer", func(t *testing.T) {
		publisher := &MockPublisher{}
		service := NewContent(&MockContentStorage{}, MockRenderer{}, publisher)

		item, err := service.Create(ctx, owner, domain.ContentItemCreationData{
			BoardId: "b1", Type: domain.ContentText, Content: "hi", OwnerIdentifier: "spoofed",
		})
		require.NoError(t, err)
		assert.Equal(t, "owner", item.OwnerIdentifier)
		assert.Equal(t, "<p>hi</p>", item.RenderedHTML)
		require.Len(t, publisher.published(), 1)
	})

	t.Run("link item is not rendered", func(t *testing.T) {
		service := NewContent(&MockContentStorage{}, MockRenderer{}, &MockPublisher{})
		item, err := service.Create(ctx, owner, domain.ContentItemCreationData{
			BoardId: "b1", Type: domain.ContentLink, Content: "caption",
			ContentPayload: domain.ContentPayload{LinkUrl: ptr("https://example.com")},
		})
		require.NoError(t, err)
		assert.Empty(t, item.RenderedHTML)
	})

	t.Run("no identity", func(t *testing.T) {
		service := NewContent(&MockContentStorage{}, MockRenderer{}, &MockPublisher{})
		_, err := service.Create(ctx, domain.Viewer{}, domain.ContentItemCreationData{BoardId: "b1", Type: domain.ContentText, Content: "x"})
		assert.ErrorIs(t, err, internal_errors.ErrForbidden)
	})

	t.Run("invalid link", func(t *testing.T) {
		service := NewContent(&MockContentStorage{}, MockRenderer{}, &MockPublisher{})
		_, err := service.Create(ctx, owner, domain.ContentItemCreationData{
			BoardId: "b1", Type: domain.ContentLink, ContentPayload: domain.ContentPayload{LinkUrl: ptr("not a url")},
		})
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
	})

	t.Run("category from another board", func(t *testing.T) {
		storage := &MockContentStorage{getCategoryFunc: func(_ context.Context, id domain.CategoryId) (domain.Category, error) {
			return domain.Category{Id: id, BoardId: "other"}, nil
		}}
		service := NewContent(storage, MockRenderer{}, &MockPublisher{})
		_, err := service.Create(ctx, owner, domain.ContentItemCreationData{
			BoardId: "b1", CategoryId: ptr("c1"), Type: domain.ContentText, Content: "x",
		})
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
	})
}

func TestContentUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner edit passes the owner predicate", func(t *testing.T) {
		var gotOwner domain.Identity
		var gotData domain.ContentItemUpdateData
		storage := &MockContentStorage{updateContentItemFunc: func(_ context.Context, id domain.ContentItemId, o domain.Identity, d domain.ContentItemUpdateData) (domain.ContentItem, error) {
			gotOwner, gotData = o, d
			return domain.ContentItem{Id: id, BoardId: "b1"}, nil
		}}
		publisher := &MockPublisher{}
		service := NewContent(storage, MockRenderer{}, publisher)

		_, err := service.Update(ctx, owner, "i1", domain.ContentItemUpdateData{Content: ptr("new")})
		require.NoError(t, err)
		assert.Equal(t, "owner", gotOwner)
		require.NotNil(t, gotData.RenderedHTML)
		assert.Equal(t, "<p>new</p>", *gotData.RenderedHTML)

		ic := publisher.published()[0].(domain.ContentItemChange)
		assert.Equal(t, []string{"content"}, ic.Fields)
	})

	t.Run("admin omits the predicate", func(t *testing.T) {
		gotOwner := "unset"
		storage := &MockContentStorage{updateContentItemFunc: func(_ context.Context, id domain.ContentItemId, o domain.Identity, _ domain.ContentItemUpdateData) (domain.ContentItem, error) {
			gotOwner = o
			return domain.ContentItem{Id: id}, nil
		}}
		service := NewContent(storage, MockRenderer{}, &MockPublisher{})

		_, err := service.Update(ctx, admin, "i1", domain.ContentItemUpdateData{ClearCategory: true})
		require.NoError(t, err)
		assert.Equal(t, "", gotOwner)
	})

	t.Run("stranger is forbidden before storage", func(t *testing.T) {
		called := false
		storage := &MockContentStorage{updateContentItemFunc: func(context.Context, domain.ContentItemId, domain.Identity, domain.ContentItemUpdateData) (domain.ContentItem, error) {
			called = true
			return domain.ContentItem{}, nil
		}}
		publisher := &MockPublisher{}
		service := NewContent(storage, MockRenderer{}, publisher)

		_, err := service.Update(ctx, stranger, "i1", domain.ContentItemUpdateData{Content: ptr("x")})
		assert.ErrorIs(t, err, internal_errors.ErrForbidden)
		assert.False(t, called)
		assert.Empty(t, publisher.published())
	})

	t.Run("missing item", func(t *testing.T) {
		storage := &MockContentStorage{getContentItemFunc: func(context.Context, domain.ContentItemId) (domain.ContentItem, error) {
			return domain.ContentItem{}, internal_errors.NotFound("Content item not found")
		}}
		service := NewContent(storage, MockRenderer{}, &MockPublisher{})
		_, err := service.Update(ctx, owner, "i1", domain.ContentItemUpdateData{Content: ptr("x")})
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})

	t.Run("emptying a text item", func(t *testing.T) {
		service := NewContent(&MockContentStorage{}, MockRenderer{}, &MockPublisher{})
		_, err := service.Update(ctx, owner, "i1", domain.ContentItemUpdateData{Content: ptr("  ")})
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
	})

	t.Run("nothing to update", func(t *testing.T) {
		service := NewContent(&MockContentStorage{}, MockRenderer{}, &MockPublisher{})
		_, err := service.Update(ctx, owner, "i1", domain.ContentItemUpdateData{})
		assert.ErrorIs(t, err, internal_errors.ErrValidation)
	})
}

func TestContentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		var gotOwner domain.Identity
		storage := &MockContentStorage{deleteContentItemFunc: func(_ context.Context, id domain.ContentItemId, o domain.Identity) (domain.ContentItem, error) {
			gotOwner = o
			return domain.ContentItem{Id: id, BoardId: "b1"}, nil
		}}
		publisher := &MockPublisher{}
		service := NewContent(storage, MockRenderer{}, publisher)

		require.NoError(t, service.Delete(ctx, owner, "i1"))
		assert.Equal(t, "owner", gotOwner)
		assert.Equal(t, domain.OpDelete, publisher.published()[0].Operation())
	})

	t.Run("storage rejects stranger", func(t *testing.T) {
		storage := &MockContentStorage{deleteContentItemFunc: func(context.Context, domain.ContentItemId, domain.Identity) (domain.ContentItem, error) {
			return domain.ContentItem{}, internal_errors.Forbidden("Only the owner can modify this content item")
		}}
		service := NewContent(storage, MockRenderer{}, &MockPublisher{})
		assert.ErrorIs(t, service.Delete(ctx, stranger, "i1"), internal_errors.ErrForbidden)
	})

	t.Run("anonymous", func(t *testing.T) {
		service := NewContent(&MockContentStorage{}, MockRenderer{}, &MockPublisher{})
		assert.ErrorIs(t, service.Delete(ctx, domain.Viewer{}, "i1"), internal_errors.ErrForbidden)
	})
}
