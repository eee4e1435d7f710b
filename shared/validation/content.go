package validation

import (
	"fmt"
	"strings"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

const (
	MaxImageSize = 5 << 20
	MaxFileSize  = 10 << 20

	MaxBoardTitle       = 500
	MaxBoardDescription = 1000
	MaxCategoryName     = 200
)

// LinkURL checks that raw is an absolute http(s) URL.
func LinkURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fieldError("link_url", "URL is required")
	}
	if err := utils.ValidateVar(raw, "http_url"); err != nil {
		return fieldError("link_url", fmt.Sprintf("%q is not a valid http(s) URL", raw))
	}
	return nil
}

// UploadSize enforces the per-kind size ceilings.
func UploadSize(size int64, isImage bool) error {
	limit := int64(MaxFileSize)
	field := "file"
	if isImage {
		limit, field = MaxImageSize, "image"
	}
	if size > limit {
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("size %.1f MB exceeds the limit of %.0f MB", FormatSizeMB(size), FormatSizeMB(limit)),
			cause:   ErrPayloadTooLarge,
		}
	}
	return nil
}

// ImageMime checks that an upload meant as an image really is one.
func ImageMime(mimeType string) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return &Error{Field: "image", Message: "file must be an image", cause: ErrInvalidMimeType}
	}
	return nil
}

// ContentItem validates a new content item before it is sent anywhere.
func ContentItem(d domain.ContentItemCreationData) error {
	if !d.Type.Valid() {
		return fieldError("type", fmt.Sprintf("unknown content type %q", d.Type))
	}
	if d.BoardId == "" {
		return fieldError("board_id", "board is required")
	}
	if d.OwnerIdentifier == "" {
		return fieldError("owner_identifier", "identity is required")
	}
	return payload(d.Type, d.Content, d.ContentPayload)
}

// ContentItemUpdate validates an edit against the item's existing type.
func ContentItemUpdate(current domain.ContentItem, d domain.ContentItemUpdateData) error {
	content := current.Content
	if d.Content != nil {
		content = *d.Content
	}
	merged := domain.ContentPayload{
		Title:    pick(d.Title, current.Title),
		ImageUrl: pick(d.ImageUrl, current.ImageUrl),
		LinkUrl:  pick(d.LinkUrl, current.LinkUrl),
		FileUrl:  pick(d.FileUrl, current.FileUrl),
		FileSize: pick(d.FileSize, current.FileSize),
		FileName: pick(d.FileName, current.FileName),
	}
	return payload(current.Type, content, merged)
}

func payload(t domain.ContentType, content string, p domain.ContentPayload) error {
	switch t {
	case domain.ContentText:
		if strings.TrimSpace(content) == "" {
			return fieldError("content", "text is required")
		}
	case domain.ContentLink:
		if p.LinkUrl == nil {
			return fieldError("link_url", "URL is required")
		}
		return LinkURL(*p.LinkUrl)
	case domain.ContentImage:
		if p.ImageUrl == nil || *p.ImageUrl == "" {
			return fieldError("image_url", "image is required")
		}
		if p.FileSize != nil {
			return UploadSize(*p.FileSize, true)
		}
	case domain.ContentFile:
		if p.FileUrl == nil || *p.FileUrl == "" {
			return fieldError("file_url", "file is required")
		}
		if p.FileSize != nil {
			return UploadSize(*p.FileSize, false)
		}
	}
	return nil
}

func CategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fieldError("name", "name is required")
	}
	if len(name) > MaxCategoryName {
		return fieldError("name", fmt.Sprintf("name is longer than %d characters", MaxCategoryName))
	}
	return nil
}

// Color accepts the hex forms the API accepts: #RGB, #RGBA, #RRGGBB, #RRGGBBAA.
func Color(c string) error {
	if err := utils.ValidateVar(c, "required,hexcolor"); err != nil {
		return fieldError("color", fmt.Sprintf("%q is not a hex color", c))
	}
	return nil
}

func BoardTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fieldError("title", "title is required")
	}
	if len(title) > MaxBoardTitle {
		return fieldError("title", fmt.Sprintf("title is longer than %d characters", MaxBoardTitle))
	}
	return nil
}

func BoardDescription(d *string) error {
	if d != nil && len(*d) > MaxBoardDescription {
		return fieldError("description", fmt.Sprintf("description is longer than %d characters", MaxBoardDescription))
	}
	return nil
}

func pick[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}
