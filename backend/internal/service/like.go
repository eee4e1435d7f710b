package service

import (
	"context"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/errors"
)

// to mock service in tests
type LikeService interface {
	Add(ctx context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (bool, error)
	Remove(ctx context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (bool, error)
	Status(ctx context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (domain.LikeStatus, error)
}

type LikeStorage interface {
	GetContentItem(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error)
	AddLike(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.Like, bool, error)
	RemoveLike(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.Like, bool, error)
	LikeStatus(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.LikeStatus, error)
}

type Like struct {
	storage   LikeStorage
	publisher ChangePublisher
}

func NewLike(storage LikeStorage, publisher ChangePublisher) *Like {
	return &Like{storage: storage, publisher: publisher}
}

// Add likes the item on behalf of the viewer. It is a no-op, reported as
// false, when the viewer already likes it.
func (l *Like) Add(ctx context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (bool, error) {
	if viewer.Identity == "" {
		return false, &errors.ErrorWithStatusCode{Message: "Identity required", StatusCode: 401}
	}
	item, err := l.storage.GetContentItem(ctx, itemId)
	if err != nil {
		return false, err
	}
	like, added, err := l.storage.AddLike(ctx, itemId, viewer.Identity)
	if err != nil || !added {
		return false, err
	}
	l.publisher.Publish(ctx, item.BoardId, domain.LikeChange{Action: domain.OpInsert, Record: like})
	return true, nil
}

func (l *Like) Remove(ctx context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (bool, error) {
	if viewer.Identity == "" {
		return false, &errors.ErrorWithStatusCode{Message: "Identity required", StatusCode: 401}
	}
	item, err := l.storage.GetContentItem(ctx, itemId)
	if err != nil {
		return false, err
	}
	like, removed, err := l.storage.RemoveLike(ctx, itemId, viewer.Identity)
	if err != nil || !removed {
		return false, err
	}
	l.publisher.Publish(ctx, item.BoardId, domain.LikeChange{Action: domain.OpDelete, Record: like})
	return true, nil
}

// Status reports the like count and whether the viewer is among the likers.
func (l *Like) Status(ctx context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (domain.LikeStatus, error) {
	if _, err := l.storage.GetContentItem(ctx, itemId); err != nil {
		return domain.LikeStatus{}, err
	}
	return l.storage.LikeStatus(ctx, itemId, viewer.Identity)
}
