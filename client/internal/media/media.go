// Package media validates and uploads the attachments of image and file
// items, generating image thumbnails locally.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

const (
	ThumbnailSize    = 320
	thumbnailQuality = 82
)

type Uploader interface {
	Upload(ctx context.Context, boardId domain.BoardId, filename, contentType string, r io.Reader) (string, error)
}

// File is an attachment read into memory; both ceilings are small enough.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 { return int64(len(f.Data)) }

// Open reads a local file and works out its MIME type from the extension,
// falling back to content sniffing.
func Open(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.Size() > validation.MaxFileSize {
		return File{}, validation.UploadSize(info.Size(), false)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	name := filepath.Base(path)
	contentType, err := validation.DetectMimeTypeByName("", name)
	if err != nil {
		contentType = http.DetectContentType(data)
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = contentType[:i]
		}
	}
	return File{Name: name, ContentType: contentType, Data: data}, nil
}

// PrepareImage checks the image, uploads it with a thumbnail and returns the
// payload of an image item. A thumbnail that cannot be made is skipped.
func PrepareImage(ctx context.Context, up Uploader, boardId domain.BoardId, f File) (domain.ContentPayload, error) {
	if err := validation.ImageMime(f.ContentType); err != nil {
		return domain.ContentPayload{}, err
	}
	if err := validation.UploadSize(f.Size(), true); err != nil {
		return domain.ContentPayload{}, err
	}

	imageUrl, err := up.Upload(ctx, boardId, f.Name, f.ContentType, bytes.NewReader(f.Data))
	if err != nil {
		return domain.ContentPayload{}, fmt.Errorf("upload image: %w", err)
	}
	payload := attachmentPayload(f)
	payload.ImageUrl = &imageUrl

	thumb, err := Thumbnail(f.Data)
	if err != nil {
		logger.With("media").Warn("thumbnail skipped", "file", f.Name, "error", err)
		return payload, nil
	}
	thumbUrl, err := up.Upload(ctx, boardId, thumbnailName(f.Name), "image/jpeg", bytes.NewReader(thumb))
	if err != nil {
		logger.With("media").Warn("thumbnail upload failed", "file", f.Name, "error", err)
		return payload, nil
	}
	payload.ThumbnailUrl = &thumbUrl
	return payload, nil
}

// PrepareFile uploads any attachment and returns the payload of a file item.
func PrepareFile(ctx context.Context, up Uploader, boardId domain.BoardId, f File) (domain.ContentPayload, error) {
	if f.Size() == 0 {
		return domain.ContentPayload{}, &validation.Error{Field: "file", Message: "file is empty"}
	}
	if err := validation.UploadSize(f.Size(), false); err != nil {
		return domain.ContentPayload{}, err
	}

	fileUrl, err := up.Upload(ctx, boardId, f.Name, f.ContentType, bytes.NewReader(f.Data))
	if err != nil {
		return domain.ContentPayload{}, fmt.Errorf("upload file: %w", err)
	}
	payload := attachmentPayload(f)
	payload.FileUrl = &fileUrl
	return payload, nil
}

func attachmentPayload(f File) domain.ContentPayload {
	name, contentType, size := f.Name, f.ContentType, f.Size()
	return domain.ContentPayload{FileName: &name, FileType: &contentType, FileSize: &size}
}

// Thumbnail decodes an image and re-encodes it as a JPEG fitting in
// ThumbnailSize x ThumbnailSize.
func Thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizeToFit(src, ThumbnailSize, ThumbnailSize), &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	newW := max(int(math.Round(float64(w)*scale)), 1)
	newH := max(int(math.Round(float64(h)*scale)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func thumbnailName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "_thumb.jpg"
}
