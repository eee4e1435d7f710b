package store

import (
	"context"
	"slices"
	"strings"

	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

var (
	errAdminOnly = internal_errors.Forbidden("Admin session required")
	errNotOwner  = internal_errors.Forbidden("Only the author or an admin can change this item")
)

func (s *Store) requireAdmin() error {
	if !s.viewer.Viewer().IsAdmin() {
		return errAdminOnly
	}
	return nil
}

// === Board ===

func (s *Store) UpdateBoard(ctx context.Context, data domain.BoardUpdateData) (domain.Board, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.Board{}, err
	}
	if data.Title != nil {
		if err := validation.BoardTitle(*data.Title); err != nil {
			return domain.Board{}, err
		}
		title := strings.TrimSpace(*data.Title)
		data.Title = &title
	}
	if err := validation.BoardDescription(data.Description); err != nil {
		return domain.Board{}, err
	}

	board, err := s.gw.UpdateBoard(ctx, s.boardId, data)
	if err != nil {
		return domain.Board{}, s.fail("Could not update board", err)
	}
	s.ReplaceBoard(board)
	return board, nil
}

func (s *Store) DeleteBoard(ctx context.Context) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.gw.DeleteBoard(ctx, s.boardId); err != nil {
		return s.fail("Could not delete board", err)
	}
	s.MarkDeleted()
	return nil
}

// === Categories ===

// CreateCategory appends a category. An empty color gets the default one.
func (s *Store) CreateCategory(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.Category{}, err
	}
	data.BoardId = s.boardId
	data.CreatedBy = s.viewer.Viewer().Identity
	data.Name = strings.TrimSpace(data.Name)
	if data.Color == "" {
		data.Color = domain.DefaultCategoryColor
	}
	if err := validation.CategoryName(data.Name); err != nil {
		return domain.Category{}, err
	}
	if err := validation.Color(data.Color); err != nil {
		return domain.Category{}, err
	}

	category, err := s.gw.CreateCategory(ctx, data)
	if err != nil {
		return domain.Category{}, s.fail("Could not create category", err)
	}
	// the feed may have delivered it already
	s.InsertCategory(category)
	return category, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	if err := s.requireAdmin(); err != nil {
		return domain.Category{}, err
	}
	if _, ok := s.Category(id); !ok {
		return domain.Category{}, internal_errors.NotFound("Category not found")
	}
	if data.Name != nil {
		name := strings.TrimSpace(*data.Name)
		if err := validation.CategoryName(name); err != nil {
			return domain.Category{}, err
		}
		data.Name = &name
	}
	if data.Color != nil {
		if err := validation.Color(*data.Color); err != nil {
			return domain.Category{}, err
		}
	}

	category, err := s.gw.UpdateCategory(ctx, id, data)
	if err != nil {
		return domain.Category{}, s.fail("Could not update category", err)
	}
	s.ReplaceCategory(category)
	return category, nil
}

// SetCategoryHidden flips visibility locally first and reverts it if the
// backend refuses.
func (s *Store) SetCategoryHidden(ctx context.Context, id domain.CategoryId, hidden bool) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.categoryIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return internal_errors.NotFound("Category not found")
	}
	previous := s.categories[i].IsHidden
	s.categories[i].IsHidden = hidden
	s.mu.Unlock()

	category, err := s.gw.UpdateCategory(ctx, id, domain.CategoryUpdateData{IsHidden: &hidden})
	if err != nil {
		s.mu.Lock()
		if i := s.categoryIndex(id); i >= 0 {
			s.categories[i].IsHidden = previous
		}
		s.mu.Unlock()
		return s.fail("Could not change category visibility", err)
	}
	s.ReplaceCategory(category)
	return nil
}

// DeleteCategory removes the category together with its items.
func (s *Store) DeleteCategory(ctx context.Context, id domain.CategoryId) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if err := s.gw.DeleteCategory(ctx, id); err != nil {
		return s.fail("Could not delete category", err)
	}
	s.RemoveCategory(id)
	return nil
}

// ReorderCategories moves the category at index from to index to and
// renumbers positions densely from zero. The new order is shown immediately;
// if any position update fails the category list is reloaded from the
// backend.
func (s *Store) ReorderCategories(ctx context.Context, from, to int) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.reordering {
		s.mu.Unlock()
		return internal_errors.Conflict("A reorder is already in progress")
	}
	n := len(s.categories)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		return &validation.Error{Field: "position", Message: "position out of range"}
	}
	if from == to {
		s.mu.Unlock()
		return nil
	}

	moved := s.categories[from]
	ordered := slices.Delete(slices.Clone(s.categories), from, from+1)
	ordered = slices.Insert(ordered, to, moved)
	var changed []domain.Category
	for i := range ordered {
		if ordered[i].Position != i {
			ordered[i].Position = i
			changed = append(changed, ordered[i])
		}
	}
	s.categories = ordered
	s.reordering = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.reordering = false
		s.mu.Unlock()
	}()

	for _, c := range changed {
		updated, err := s.gw.UpdateCategoryPosition(ctx, s.boardId, c.Id, c.Position)
		if err != nil {
			s.notify.Notify("Could not reorder categories", err)
			s.reloadCategories(ctx)
			return err
		}
		s.mu.Lock()
		if i := s.categoryIndex(updated.Id); i >= 0 {
			s.categories[i] = updated
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	domain.SortCategories(s.categories)
	s.mu.Unlock()
	return nil
}

func (s *Store) reloadCategories(ctx context.Context) {
	categories, err := s.gw.ListCategories(ctx, s.boardId)
	if err != nil {
		s.notify.Notify("Could not reload categories", err)
		return
	}
	s.mu.Lock()
	s.setCategories(categories)
	s.mu.Unlock()
}

// === Content items ===

// CreateContentItem posts an item owned by the current identity.
func (s *Store) CreateContentItem(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	data.BoardId = s.boardId
	data.OwnerIdentifier = s.viewer.Viewer().Identity
	if err := validation.ContentItem(data); err != nil {
		return domain.ContentItem{}, err
	}
	if data.CategoryId != nil {
		if _, ok := s.Category(*data.CategoryId); !ok {
			return domain.ContentItem{}, &validation.Error{Field: "category_id", Message: "category does not exist"}
		}
	}

	item, err := s.gw.CreateContentItem(ctx, data)
	if err != nil {
		return domain.ContentItem{}, s.fail("Could not post item", err)
	}
	s.InsertItem(item)
	return item, nil
}

func (s *Store) UpdateContentItem(ctx context.Context, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	current, err := s.modifiable(id)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if err := validation.ContentItemUpdate(current, data); err != nil {
		return domain.ContentItem{}, err
	}
	if data.CategoryId != nil {
		if _, ok := s.Category(*data.CategoryId); !ok {
			return domain.ContentItem{}, &validation.Error{Field: "category_id", Message: "category does not exist"}
		}
	}

	item, err := s.gw.UpdateContentItem(ctx, id, data)
	if err != nil {
		return domain.ContentItem{}, s.fail("Could not update item", err)
	}
	s.ReplaceItem(item)
	if updated, ok := s.Item(id); ok {
		return updated, nil
	}
	return item, nil
}

func (s *Store) DeleteContentItem(ctx context.Context, id domain.ContentItemId) error {
	if _, err := s.modifiable(id); err != nil {
		return err
	}
	if err := s.gw.DeleteContentItem(ctx, id); err != nil {
		return s.fail("Could not delete item", err)
	}
	s.RemoveItem(id)
	return nil
}

// modifiable returns the item if the viewer may change it. Refusals happen
// here, before any request is sent.
func (s *Store) modifiable(id domain.ContentItemId) (domain.ContentItem, error) {
	item, ok := s.Item(id)
	if !ok {
		return domain.ContentItem{}, internal_errors.NotFound("Item not found")
	}
	if !s.viewer.Viewer().CanModify(item.OwnerIdentifier) {
		return domain.ContentItem{}, errNotOwner
	}
	return item, nil
}
