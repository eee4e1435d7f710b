package store

import (
	"slices"

	"github.com/itchan-dev/simpleboard/shared/domain"
)

// Merge operations. Each reports whether the store changed; records for other
// boards and unknown ids are ignored.

func (s *Store) ReplaceBoard(b domain.Board) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Id != s.boardId || !s.loaded {
		return false
	}
	s.board = b
	return true
}

func (s *Store) MarkDeleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = true
	s.categories = nil
	s.items = make(map[domain.ContentItemId]domain.ContentItem)
}

// InsertCategory adds c unless a category with the same id is present.
func (s *Store) InsertCategory(c domain.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.BoardId != s.boardId || s.categoryIndex(c.Id) >= 0 {
		return false
	}
	s.categories = append(s.categories, c)
	domain.SortCategories(s.categories)
	return true
}

func (s *Store) ReplaceCategory(c domain.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceCategory(c)
}

func (s *Store) replaceCategory(c domain.Category) bool {
	i := s.categoryIndex(c.Id)
	if i < 0 {
		return false
	}
	s.categories[i] = c
	domain.SortCategories(s.categories)
	return true
}

// RemoveCategory drops the category and every item filed under it.
func (s *Store) RemoveCategory(id domain.CategoryId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeCategory(id)
}

func (s *Store) removeCategory(id domain.CategoryId) bool {
	i := s.categoryIndex(id)
	if i < 0 {
		return false
	}
	s.categories = slices.Delete(s.categories, i, i+1)
	for itemId, it := range s.items {
		if it.InCategory(id) {
			delete(s.items, itemId)
		}
	}
	return true
}

// InsertItem adds it unless an item with the same id is present.
func (s *Store) InsertItem(it domain.ContentItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it.BoardId != s.boardId {
		return false
	}
	if _, ok := s.items[it.Id]; ok {
		return false
	}
	s.items[it.Id] = it
	return true
}

// ReplaceItem overwrites a present item. The like count is kept: it is
// maintained by like events, not by item records.
func (s *Store) ReplaceItem(it domain.ContentItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceItem(it)
}

func (s *Store) replaceItem(it domain.ContentItem) bool {
	cur, ok := s.items[it.Id]
	if !ok {
		return false
	}
	it.LikeCount = cur.LikeCount
	s.items[it.Id] = it
	return true
}

func (s *Store) RemoveItem(id domain.ContentItemId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// AdjustLikeCount moves the item's like count by delta, never below zero,
// and returns the delta applied. Unknown items apply nothing.
func (s *Store) AdjustLikeCount(id domain.ContentItemId, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return 0
	}
	before := it.LikeCount
	it.LikeCount = max(before+delta, 0)
	s.items[id] = it
	return it.LikeCount - before
}
