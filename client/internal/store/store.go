// Package store holds the client's view of one board and applies user intents
// optimistically against the backend.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

// Gateway is the subset of the backend API the store drives.
type Gateway interface {
	LoadBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) error

	ListCategories(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error)
	CreateCategory(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error)
	UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error)
	UpdateCategoryPosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error)
	DeleteCategory(ctx context.Context, id domain.CategoryId) error

	ListContentItems(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error)
	CreateContentItem(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error)
	UpdateContentItem(ctx context.Context, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error)
	DeleteContentItem(ctx context.Context, id domain.ContentItemId) error
}

type ViewerSource interface {
	Viewer() domain.Viewer
}

// Notifier receives failures that the user should see briefly.
type Notifier interface {
	Notify(msg string, err error)
}

type logNotifier struct{}

func (logNotifier) Notify(msg string, err error) {
	logger.With("store").Warn(msg, "error", err)
}

// Store is the state of one board view. State mutations are serialized by mu;
// gateway calls run without holding it.
type Store struct {
	boardId domain.BoardId
	gw      Gateway
	viewer  ViewerSource
	notify  Notifier

	mu         sync.Mutex
	board      domain.Board
	loaded     bool
	deleted    bool
	categories []domain.Category // kept sorted by position
	items      map[domain.ContentItemId]domain.ContentItem
	reordering bool
}

// New returns an empty store for boardId. A nil notifier logs failures.
func New(boardId domain.BoardId, gw Gateway, viewer ViewerSource, notifier Notifier) *Store {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Store{
		boardId: boardId,
		gw:      gw,
		viewer:  viewer,
		notify:  notifier,
		items:   make(map[domain.ContentItemId]domain.ContentItem),
	}
}

func (s *Store) BoardId() domain.BoardId { return s.boardId }

// Load fetches the board, provisioning it if needed, and its categories and
// items, replacing whatever the store held.
func (s *Store) Load(ctx context.Context) error {
	board, err := s.gw.LoadBoard(ctx, s.boardId)
	if err != nil {
		return s.fail("Could not load board", err)
	}
	categories, err := s.gw.ListCategories(ctx, s.boardId)
	if err != nil {
		return s.fail("Could not load categories", err)
	}
	items, err := s.gw.ListContentItems(ctx, s.boardId)
	if err != nil {
		return s.fail("Could not load content", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board, s.loaded, s.deleted = board, true, false
	s.setCategories(categories)
	s.items = make(map[domain.ContentItemId]domain.ContentItem, len(items))
	for _, it := range items {
		s.items[it.Id] = it
	}
	return nil
}

func (s *Store) fail(msg string, err error) error {
	s.notify.Notify(msg, err)
	return err
}

// setCategories must be called with mu held.
func (s *Store) setCategories(cs []domain.Category) {
	s.categories = slices.Clone(cs)
	domain.SortCategories(s.categories)
}

// === Views ===

func (s *Store) Board() (domain.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board, s.loaded
}

// Deleted reports whether the board was deleted while being viewed.
func (s *Store) Deleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleted
}

// Categories returns every category, hidden ones included, in display order.
func (s *Store) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

func (s *Store) VisibleCategories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if !c.IsHidden {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) Category(id domain.CategoryId) (domain.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if i < 0 {
		return domain.Category{}, false
	}
	return s.categories[i], true
}

func (s *Store) Item(id domain.ContentItemId) (domain.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

// ItemsInCategory returns the category's items, most recently updated first.
func (s *Store) ItemsInCategory(id domain.CategoryId) []domain.ContentItem {
	return s.collectItems(func(it *domain.ContentItem) bool { return it.InCategory(id) })
}

// UnfiledItems returns items without a category, most recently updated first.
func (s *Store) UnfiledItems() []domain.ContentItem {
	return s.collectItems(func(it *domain.ContentItem) bool { return it.CategoryId == nil })
}

func (s *Store) collectItems(match func(*domain.ContentItem) bool) []domain.ContentItem {
	s.mu.Lock()
	out := make([]domain.ContentItem, 0)
	for _, it := range s.items {
		if match(&it) {
			out = append(out, it)
		}
	}
	s.mu.Unlock()
	domain.SortByRecency(out)
	return out
}

// IsReordering reports whether a category reorder is waiting on the backend.
func (s *Store) IsReordering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reordering
}

// categoryIndex must be called with mu held.
func (s *Store) categoryIndex(id domain.CategoryId) int {
	return slices.IndexFunc(s.categories, func(c domain.Category) bool { return c.Id == id })
}
