package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
)

// Storage keeps uploaded media on the local disk as <board>/<uuid><ext>.
type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// Clean so that "media/../media" and "media" are the same root
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes fileData under the board directory and returns its relative path.
func (s *Storage) Save(fileData io.Reader, boardID, extension string) (string, error) {
	filename := uuid.NewString() + cleanExtension(extension)
	relativePath := filepath.ToSlash(filepath.Join(boardID, filename))
	fullPath, err := s.resolve(relativePath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return relativePath, nil
}

// Open returns the stored file. Callers close it.
func (s *Storage) Open(relativePath string) (*os.File, error) {
	fullPath, err := s.resolve(relativePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, internal_errors.NotFound("File not found")
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if info, err := file.Stat(); err == nil && info.IsDir() {
		file.Close()
		return nil, internal_errors.NotFound("File not found")
	}

	return file, nil
}

// DeleteFile removes one object. A missing file is not an error.
func (s *Storage) DeleteFile(relativePath string) error {
	fullPath, err := s.resolve(relativePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteBoard removes every object stored for the board.
func (s *Storage) DeleteBoard(boardID string) error {
	boardPath, err := s.resolve(boardID)
	if err != nil {
		return err
	}
	if boardPath == s.rootPath {
		return internal_errors.BadRequest("Invalid board id")
	}
	if err := os.RemoveAll(boardPath); err != nil {
		return fmt.Errorf("failed to delete board directory: %w", err)
	}
	return nil
}

// resolve maps a relative object path into the root, rejecting anything
// that would escape it.
func (s *Storage) resolve(relativePath string) (string, error) {
	fullPath := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	if fullPath != s.rootPath && !strings.HasPrefix(fullPath, s.rootPath+string(filepath.Separator)) {
		return "", internal_errors.BadRequest("Invalid path")
	}
	return fullPath, nil
}

func cleanExtension(ext string) string {
	ext = strings.ToLower(filepath.Ext("x" + ext))
	for _, r := range ext[min(1, len(ext)):] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
