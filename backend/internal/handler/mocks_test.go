package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/itchan-dev/simpleboard/backend/internal/service"
	"github.com/itchan-dev/simpleboard/shared/domain"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
)

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

// withViewer stands in for the auth middleware.
func withViewer(r *http.Request, viewer domain.Viewer) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), mw.ViewerKey, viewer))
}

type MockAuthService struct {
	MockLogin func(email, password string) (string, error)
}

func (m *MockAuthService) Login(email, password string) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(email, password)
	}
	return "", nil
}

type MockBoardService struct {
	MockCreate     func(data domain.BoardCreationData) (domain.Board, error)
	MockGet        func(id domain.BoardId) (domain.Board, error)
	MockListRecent func(limit int) ([]domain.Board, error)
	MockUpdate     func(id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error)
	MockDelete     func(id domain.BoardId) error
}

func (m *MockBoardService) Create(_ context.Context, data domain.BoardCreationData) (domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Board{Id: data.Id, Title: data.Title}, nil
}

func (m *MockBoardService) Get(_ context.Context, id domain.BoardId) (domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardService) ListRecent(_ context.Context, limit int) ([]domain.Board, error) {
	if m.MockListRecent != nil {
		return m.MockListRecent(limit)
	}
	return nil, nil
}

func (m *MockBoardService) Update(_ context.Context, id domain.BoardId, data domain.BoardUpdateData) (domain.Board, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, data)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardService) Delete(_ context.Context, id domain.BoardId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return nil
}

type MockCategoryService struct {
	MockCreate         func(data domain.CategoryCreationData) (domain.Category, error)
	MockList           func(boardId domain.BoardId) ([]domain.Category, error)
	MockUpdate         func(id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error)
	MockUpdatePosition func(boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error)
	MockDelete         func(id domain.CategoryId) error
}

func (m *MockCategoryService) Create(_ context.Context, data domain.CategoryCreationData) (domain.Category, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Category{BoardId: data.BoardId, Name: data.Name}, nil
}

func (m *MockCategoryService) List(_ context.Context, boardId domain.BoardId) ([]domain.Category, error) {
	if m.MockList != nil {
		return m.MockList(boardId)
	}
	return nil, nil
}

func (m *MockCategoryService) Update(_ context.Context, id domain.CategoryId, data domain.CategoryUpdateData) (domain.Category, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, data)
	}
	return domain.Category{Id: id}, nil
}

func (m *MockCategoryService) UpdatePosition(_ context.Context, boardId domain.BoardId, id domain.CategoryId, position int) (domain.Category, error) {
	if m.MockUpdatePosition != nil {
		return m.MockUpdatePosition(boardId, id, position)
	}
	return domain.Category{Id: id, BoardId: boardId, Position: position}, nil
}

func (m *MockCategoryService) Delete(_ context.Context, id domain.CategoryId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return nil
}

type MockContentService struct {
	MockCreate func(viewer domain.Viewer, data domain.ContentItemCreationData) (domain.ContentItem, error)
	MockGet    func(id domain.ContentItemId) (domain.ContentItem, error)
	MockList   func(boardId domain.BoardId) ([]domain.ContentItem, error)
	MockUpdate func(viewer domain.Viewer, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error)
	MockDelete func(viewer domain.Viewer, id domain.ContentItemId) error
}

func (m *MockContentService) Create(_ context.Context, viewer domain.Viewer, data domain.ContentItemCreationData) (domain.ContentItem, error) {
	if m.MockCreate != nil {
		return m.MockCreate(viewer, data)
	}
	return domain.ContentItem{BoardId: data.BoardId, Type: data.Type}, nil
}

func (m *MockContentService) Get(_ context.Context, id domain.ContentItemId) (domain.ContentItem, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.ContentItem{Id: id}, nil
}

func (m *MockContentService) List(_ context.Context, boardId domain.BoardId) ([]domain.ContentItem, error) {
	if m.MockList != nil {
		return m.MockList(boardId)
	}
	return nil, nil
}

func (m *MockContentService) Update(_ context.Context, viewer domain.Viewer, id domain.ContentItemId, data domain.ContentItemUpdateData) (domain.ContentItem, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(viewer, id, data)
	}
	return domain.ContentItem{Id: id}, nil
}

func (m *MockContentService) Delete(_ context.Context, viewer domain.Viewer, id domain.ContentItemId) error {
	if m.MockDelete != nil {
		return m.MockDelete(viewer, id)
	}
	return nil
}

type MockLikeService struct {
	MockAdd    func(viewer domain.Viewer, itemId domain.ContentItemId) (bool, error)
	MockRemove func(viewer domain.Viewer, itemId domain.ContentItemId) (bool, error)
	MockStatus func(viewer domain.Viewer, itemId domain.ContentItemId) (domain.LikeStatus, error)
}

func (m *MockLikeService) Add(_ context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (bool, error) {
	if m.MockAdd != nil {
		return m.MockAdd(viewer, itemId)
	}
	return true, nil
}

func (m *MockLikeService) Remove(_ context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (bool, error) {
	if m.MockRemove != nil {
		return m.MockRemove(viewer, itemId)
	}
	return true, nil
}

func (m *MockLikeService) Status(_ context.Context, viewer domain.Viewer, itemId domain.ContentItemId) (domain.LikeStatus, error) {
	if m.MockStatus != nil {
		return m.MockStatus(viewer, itemId)
	}
	return domain.LikeStatus{}, nil
}

type MockMediaService struct {
	MockUpload func(boardId domain.BoardId, upload service.Upload) (string, error)
	MockOpen   func(path string) (*os.File, error)
}

func (m *MockMediaService) Upload(_ context.Context, boardId domain.BoardId, upload service.Upload) (string, error) {
	if m.MockUpload != nil {
		return m.MockUpload(boardId, upload)
	}
	return "", nil
}

func (m *MockMediaService) Open(path string) (*os.File, error) {
	if m.MockOpen != nil {
		return m.MockOpen(path)
	}
	return nil, os.ErrNotExist
}

type MockHealth struct {
	err error
}

func (m *MockHealth) Ping(context.Context) error { return m.err }
