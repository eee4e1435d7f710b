package store

import (
	"context"
	"sync"

	"github.com/itchan-dev/simpleboard/shared/domain"
)

type MockGateway struct {
	MockLoadBoard              func(id domain.BoardId) (domain.Board, error)
	MockUpdateBoard            func(id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	MockDeleteBoard            func(id domain.BoardId) error
	MockListCategories         func(boardId domain.BoardId) ([]domain.Category, error)
	MockCreateCategory         func(data domain.CategoryCreationData) (domain.Category, error)
	MockUpdateCategory         func(id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error)
	MockUpdateCategoryPosition func(boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error)
	MockDeleteCategory         func(id domain.CategoryId) error
	MockListContentItems       func(boardId domain.BoardId) ([]domain.ContentItem, error)
	MockCreateContentItem      func(data domain.ContentItemCreationData) (domain.ContentItem, error)
	MockUpdateContentItem      func(id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error)
	MockDeleteContentItem      func(id domain.ContentItemId) error

	mu    sync.Mutex
	calls int
}

func (m *MockGateway) count() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

// Calls is the number of gateway requests issued.
func (m *MockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockGateway) LoadBoard(_ context.Context, id domain.BoardId) (domain.Board, error) {
	m.count()
	if m.MockLoadBoard != nil {
		return m.MockLoadBoard(id)
	}
	return domain.Board{Id: id, Title: domain.DefaultBoardTitle(id)}, nil
}

func (m *MockGateway) UpdateBoard(_ context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	m.count()
	if m.MockUpdateBoard != nil {
		return m.MockUpdateBoard(id, data)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockGateway) DeleteBoard(_ context.Context, id domain.BoardId) error {
	m.count()
	if m.MockDeleteBoard != nil {
		return m.MockDeleteBoard(id)
	}
	return nil
}

func (m *MockGateway) ListCategories(_ context.Context, boardId domain.BoardId) ([]domain.Category, error) {
	m.count()
	if m.MockListCategories != nil {
		return m.MockListCategories(boardId)
	}
	return nil, nil
}

func (m *MockGateway) CreateCategory(_ context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	m.count()
	if m.MockCreateCategory != nil {
		return m.MockCreateCategory(data)
	}
	return domain.Category{Id: "new", BoardId: data.BoardId, Name: data.Name, Color: data.Color}, nil
}

func (m *MockGateway) UpdateCategory(_ context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	m.count()
	if m.MockUpdateCategory != nil {
		return m.MockUpdateCategory(id, data)
	}
	return domain.Category{Id: id}, nil
}

func (m *MockGateway) UpdateCategoryPosition(_ context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error) {
	m.count()
	if m.MockUpdateCategoryPosition != nil {
		return m.MockUpdateCategoryPosition(boardId, id, position)
	}
	return domain.Category{Id: id, BoardId: boardId, Position: position}, nil
}

func (m *MockGateway) DeleteCategory(_ context.Context, id domain.CategoryId) error {
	m.count()
	if m.MockDeleteCategory != nil {
		return m.MockDeleteCategory(id)
	}
	return nil
}

func (m *MockGateway) ListContentItems(_ context.Context, boardId domain.BoardId) ([]domain.ContentItem, error) {
	m.count()
	if m.MockListContentItems != nil {
		return m.MockListContentItems(boardId)
	}
	return nil, nil
}

func (m *MockGateway) CreateContentItem(_ context.Context, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	m.count()
	if m.MockCreateContentItem != nil {
		return m.MockCreateContentItem(data)
	}
	return domain.ContentItem{Id: "new", BoardId: data.BoardId, CategoryId: data.CategoryId, Type: data.Type, Content: data.Content, OwnerIdentifier: data.OwnerIdentifier}, nil
}

func (m *MockGateway) UpdateContentItem(_ context.Context, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	m.count()
	if m.MockUpdateContentItem != nil {
		return m.MockUpdateContentItem(id, data)
	}
	return domain.ContentItem{Id: id}, nil
}

func (m *MockGateway) DeleteContentItem(_ context.Context, id domain.ContentItemId) error {
	m.count()
	if m.MockDeleteContentItem != nil {
		return m.MockDeleteContentItem(id)
	}
	return nil
}

type staticViewer domain.Viewer

func (v staticViewer) Viewer() domain.Viewer { return domain.Viewer(v) }

var (
	owner    = staticViewer{Identity: "owner"}
	stranger = staticViewer{Identity: "stranger"}
	admin    = staticViewer{Identity: "admin-device", Admin: &domain.Admin{Email: "admin@example.com"}}
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Notify(msg string, _ error) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}
