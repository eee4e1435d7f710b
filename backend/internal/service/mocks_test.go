package service

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/itchan-dev/simpleboard/shared/domain"
)

func ptr[T any](v T) *T { return &v }

// MockPublisher records published changes.
type MockPublisher struct {
	mu      sync.Mutex
	changes []domain.Change
	boards  []domain.BoardId
}

func (m *MockPublisher) Publish(_ context.Context, boardId domain.BoardId, change domain.Change) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards = append(m.boards, boardId)
	m.changes = append(m.changes, change)
}

func (m *MockPublisher) published() []domain.Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Change(nil), m.changes...)
}

// MockBoardStorage mocks the BoardStorage interface.
type MockBoardStorage struct {
	createBoardFunc      func(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	getBoardFunc         func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	listRecentBoardsFunc func(ctx context.Context, limit int) ([]domain.Board, error)
	updateBoardFunc      func(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	deleteBoardFunc      func(ctx context.Context, id domain.BoardId) (domain.Board, error)
}

func (m *MockBoardStorage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	if m.createBoardFunc != nil {
		return m.createBoardFunc(ctx, data)
	}
	return domain.Board{Id: data.Id, Title: data.Title, Description: data.Description, CreatedBy: data.CreatedBy}, nil
}

func (m *MockBoardStorage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.getBoardFunc != nil {
		return m.getBoardFunc(ctx, id)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardStorage) ListRecentBoards(ctx context.Context, limit int) ([]domain.Board, error) {
	if m.listRecentBoardsFunc != nil {
		return m.listRecentBoardsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockBoardStorage) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	if m.updateBoardFunc != nil {
		return m.updateBoardFunc(ctx, id, data)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardStorage) DeleteBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.deleteBoardFunc != nil {
		return m.deleteBoardFunc(ctx, id)
	}
	return domain.Board{Id: id}, nil
}

// MockBoardMedia mocks the BoardMedia interface.
type MockBoardMedia struct {
	deleteBoardFunc func(boardID string) error
}

func (m *MockBoardMedia) DeleteBoard(boardID string) error {
	if m.deleteBoardFunc != nil {
		return m.deleteBoardFunc(boardID)
	}
	return nil
}

// MockCategoryStorage mocks the CategoryStorage interface.
type MockCategoryStorage struct {
	createCategoryFunc         func(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error)
	listCategoriesFunc         func(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error)
	updateCategoryFunc         func(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error)
	updateCategoryPositionFunc func(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error)
	deleteCategoryFunc         func(ctx context.Context, id domain.CategoryId) (domain.Category, error)
}

func (m *MockCategoryStorage) CreateCategory(ctx context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	if m.createCategoryFunc != nil {
		return m.createCategoryFunc(ctx, data)
	}
	return domain.Category{Id: "c1", BoardId: data.BoardId, Name: data.Name, Color: data.Color}, nil
}

func (m *MockCategoryStorage) ListCategories(ctx context.Context, boardId domain.BoardId) ([]domain.Category, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx, boardId)
	}
	return nil, nil
}

func (m *MockCategoryStorage) UpdateCategory(ctx context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	if m.updateCategoryFunc != nil {
		return m.updateCategoryFunc(ctx, id, data)
	}
	return domain.Category{Id: id, BoardId: "b1"}, nil
}

func (m *MockCategoryStorage) UpdateCategoryPosition(ctx context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error) {
	if m.updateCategoryPositionFunc != nil {
		return m.updateCategoryPositionFunc(ctx, boardId, id, position)
	}
	return domain.Category{Id: id, BoardId: boardId, Position: position}, nil
}

func (m *MockCategoryStorage) DeleteCategory(ctx context.Context, id domain.CategoryId) (domain.Category, error) {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(ctx, id)
	}
	return domain.Category{Id: id, BoardId: "b1"}, nil
}

// MockContentStorage mocks ContentStorage and LikeStorage.
type MockContentStorage struct {
	createContentItemFunc func(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error)
	getContentItemFunc    func(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error)
	listContentItemsFunc  func(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error)
	updateContentItemFunc func(ctx context.Context, id domain.ContentItemId, owner domain.Identity, data domain.ContentItemUpdateData) (domain.ContentItem, error)
	deleteContentItemFunc func(ctx context.Context, id domain.ContentItemId, owner domain.Identity) (domain.ContentItem, error)
	getCategoryFunc       func(ctx context.Context, id domain.CategoryId) (domain.Category, error)
	addLikeFunc           func(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.Like, bool, error)
	removeLikeFunc        func(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.Like, bool, error)
	likeStatusFunc        func(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.LikeStatus, error)
}

func (m *MockContentStorage) CreateContentItem(ctx context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	if m.createContentItemFunc != nil {
		return m.createContentItemFunc(ctx, data)
	}
	return domain.ContentItem{Id: "i1", BoardId: data.BoardId, Type: data.Type, Content: data.Content, OwnerIdentifier: data.OwnerIdentifier, RenderedHTML: data.RenderedHTML}, nil
}

func (m *MockContentStorage) GetContentItem(ctx context.Context, id domain.ContentItemId) (domain.ContentItem, error) {
	if m.getContentItemFunc != nil {
		return m.getContentItemFunc(ctx, id)
	}
	return domain.ContentItem{Id: id, BoardId: "b1", Type: domain.ContentText, Content: "x", OwnerIdentifier: "owner"}, nil
}

func (m *MockContentStorage) ListContentItems(ctx context.Context, boardId domain.BoardId) ([]domain.ContentItem, error) {
	if m.listContentItemsFunc != nil {
		return m.listContentItemsFunc(ctx, boardId)
	}
	return nil, nil
}

func (m *MockContentStorage) UpdateContentItem(ctx context.Context, id domain.ContentItemId, owner domain.Identity, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	if m.updateContentItemFunc != nil {
		return m.updateContentItemFunc(ctx, id, owner, data)
	}
	return domain.ContentItem{Id: id, BoardId: "b1"}, nil
}

func (m *MockContentStorage) DeleteContentItem(ctx context.Context, id domain.ContentItemId, owner domain.Identity) (domain.ContentItem, error) {
	if m.deleteContentItemFunc != nil {
		return m.deleteContentItemFunc(ctx, id, owner)
	}
	return domain.ContentItem{Id: id, BoardId: "b1"}, nil
}

func (m *MockContentStorage) GetCategory(ctx context.Context, id domain.CategoryId) (domain.Category, error) {
	if m.getCategoryFunc != nil {
		return m.getCategoryFunc(ctx, id)
	}
	return domain.Category{Id: id, BoardId: "b1"}, nil
}

func (m *MockContentStorage) AddLike(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.Like, bool, error) {
	if m.addLikeFunc != nil {
		return m.addLikeFunc(ctx, itemId, user)
	}
	return domain.Like{Id: "l1", ContentItemId: itemId, UserIdentifier: user}, true, nil
}

func (m *MockContentStorage) RemoveLike(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.Like, bool, error) {
	if m.removeLikeFunc != nil {
		return m.removeLikeFunc(ctx, itemId, user)
	}
	return domain.Like{Id: "l1", ContentItemId: itemId, UserIdentifier: user}, true, nil
}

func (m *MockContentStorage) LikeStatus(ctx context.Context, itemId domain.ContentItemId, user domain.Identity) (domain.LikeStatus, error) {
	if m.likeStatusFunc != nil {
		return m.likeStatusFunc(ctx, itemId, user)
	}
	return domain.LikeStatus{}, nil
}

// MockRenderer echoes its input wrapped in a paragraph.
type MockRenderer struct{}

func (MockRenderer) Render(text string) string { return "<p>" + text + "</p>" }

// MockMediaStorage mocks the MediaStorage interface.
type MockMediaStorage struct {
	saveFunc func(fileData io.Reader, boardID, extension string) (string, error)
	openFunc func(relativePath string) (*os.File, error)
}

func (m *MockMediaStorage) Save(fileData io.Reader, boardID, extension string) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(fileData, boardID, extension)
	}
	return boardID + "/file" + extension, nil
}

func (m *MockMediaStorage) Open(relativePath string) (*os.File, error) {
	if m.openFunc != nil {
		return m.openFunc(relativePath)
	}
	return nil, nil
}
