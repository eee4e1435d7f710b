package api

import "github.com/itchan-dev/simpleboard/shared/domain"

// ContentPayload mirrors domain.ContentPayload on the wire.
type ContentPayload struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=500"`
	ImageUrl     *string `json:"image_url,omitempty" validate:"omitempty,url"`
	ThumbnailUrl *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	LinkUrl      *string `json:"link_url,omitempty" validate:"omitempty,http_url"`
	FileUrl      *string `json:"file_url,omitempty" validate:"omitempty,url"`
	FileName     *string `json:"file_name,omitempty" validate:"omitempty,max=255"`
	FileType     *string `json:"file_type,omitempty" validate:"omitempty,max=255"`
	FileSize     *int64  `json:"file_size,omitempty" validate:"omitempty,gte=0"`
}

type CreateContentItemRequest struct {
	CategoryId *string `json:"category_id,omitempty"`
	Type       string  `json:"type" validate:"required,oneof=text image link file"`
	Content    string  `json:"content" validate:"max=20000"`
	AuthorName *string `json:"author_name,omitempty" validate:"omitempty,max=100"`
	ContentPayload
}

type UpdateContentItemRequest struct {
	CategoryId    *string `json:"category_id,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
	Content       *string `json:"content,omitempty" validate:"omitempty,max=20000"`
	AuthorName    *string `json:"author_name,omitempty" validate:"omitempty,max=100"`
	ContentPayload
}

type ContentItemResponse struct {
	domain.ContentItem
}

type ContentItemListResponse struct {
	Items []domain.ContentItem `json:"items"`
}

func (p ContentPayload) ToDomain() domain.ContentPayload {
	return domain.ContentPayload{
		Title:        p.Title,
		ImageUrl:     p.ImageUrl,
		ThumbnailUrl: p.ThumbnailUrl,
		LinkUrl:      p.LinkUrl,
		FileUrl:      p.FileUrl,
		FileName:     p.FileName,
		FileType:     p.FileType,
		FileSize:     p.FileSize,
	}
}

func PayloadFromDomain(p domain.ContentPayload) ContentPayload {
	return ContentPayload{
		Title:        p.Title,
		ImageUrl:     p.ImageUrl,
		ThumbnailUrl: p.ThumbnailUrl,
		LinkUrl:      p.LinkUrl,
		FileUrl:      p.FileUrl,
		FileName:     p.FileName,
		FileType:     p.FileType,
		FileSize:     p.FileSize,
	}
}
