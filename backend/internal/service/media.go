package service

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

// to mock service in tests
type MediaService interface {
	Upload(ctx context.Context, boardId domain.BoardId, upload Upload) (string, error)
	Open(path string) (*os.File, error)
}

// Upload is one file received from a client.
type Upload struct {
	Data     io.Reader
	Filename string
	MimeType string
	Size     int64
}

type MediaStorage interface {
	Save(fileData io.Reader, boardID, extension string) (string, error)
	Open(relativePath string) (*os.File, error)
}

type MediaBoards interface {
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
}

type Media struct {
	storage MediaStorage
	boards  MediaBoards
	baseURL string
}

// NewMedia serves stored objects under publicBaseURL + "/v1/media/".
func NewMedia(storage MediaStorage, boards MediaBoards, publicBaseURL string) *Media {
	return &Media{storage: storage, boards: boards, baseURL: strings.TrimRight(publicBaseURL, "/") + "/v1/media/"}
}

// Upload stores the file for the board and returns its public URL. Images
// are held to the image size ceiling, everything else to the file ceiling.
func (m *Media) Upload(ctx context.Context, boardId domain.BoardId, upload Upload) (string, error) {
	if _, err := m.boards.GetBoard(ctx, boardId); err != nil {
		return "", err
	}
	if upload.Size <= 0 {
		return "", errors.BadRequest("Empty file")
	}
	isImage := strings.HasPrefix(upload.MimeType, "image/")
	if err := validation.UploadSize(upload.Size, isImage); err != nil {
		return "", validationError(err)
	}

	path, err := m.storage.Save(upload.Data, boardId, extensionFor(upload.Filename, upload.MimeType))
	if err != nil {
		return "", err
	}
	return m.baseURL + path, nil
}

func (m *Media) Open(path string) (*os.File, error) {
	return m.storage.Open(path)
}

func extensionFor(filename, mimeType string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
