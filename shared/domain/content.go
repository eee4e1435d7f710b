package domain

import (
	"sort"
	"time"
)

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentLink  ContentType = "link"
	ContentFile  ContentType = "file"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentText, ContentImage, ContentLink, ContentFile:
		return true
	}
	return false
}

// ContentItem is a single post on a board. OwnerIdentifier is fixed at creation.
type ContentItem struct {
	Id              ContentItemId `json:"id"`
	BoardId         BoardId       `json:"board_id"`
	CategoryId      *CategoryId   `json:"category_id,omitempty"`
	Type            ContentType   `json:"type"`
	Content         string        `json:"content"`
	Title           *string       `json:"title,omitempty"`
	ImageUrl        *string       `json:"image_url,omitempty"`
	ThumbnailUrl    *string       `json:"thumbnail_url,omitempty"`
	LinkUrl         *string       `json:"link_url,omitempty"`
	FileUrl         *string       `json:"file_url,omitempty"`
	FileName        *string       `json:"file_name,omitempty"`
	FileType        *string       `json:"file_type,omitempty"`
	FileSize        *int64        `json:"file_size,omitempty"`
	AuthorName      *string       `json:"author_name,omitempty"`
	OwnerIdentifier Identity      `json:"owner_identifier"`
	RenderedHTML    string        `json:"rendered_html,omitempty"`
	LikeCount       int           `json:"like_count"`
	AgeSeconds      int64         `json:"age_seconds,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// InCategory reports whether the item is filed under categoryId.
func (c *ContentItem) InCategory(categoryId CategoryId) bool {
	return c.CategoryId != nil && *c.CategoryId == categoryId
}

// ContentPayload holds the type-specific fields shared by creation and update.
type ContentPayload struct {
	Title        *string
	ImageUrl     *string
	ThumbnailUrl *string
	LinkUrl      *string
	FileUrl      *string
	FileName     *string
	FileType     *string
	FileSize     *int64
}

type ContentItemCreationData struct {
	BoardId         BoardId
	CategoryId      *CategoryId
	Type            ContentType
	Content         string
	AuthorName      *string
	OwnerIdentifier Identity
	RenderedHTML    string
	ContentPayload
}

// ContentItemUpdateData carries the mutable fields. Type and owner are immutable.
type ContentItemUpdateData struct {
	CategoryId    *CategoryId
	ClearCategory bool // move the item to unfiled
	Content       *string
	AuthorName    *string
	RenderedHTML  *string
	ContentPayload
}

// SortByRecency orders items by UpdatedAt descending, ties by id.
func SortByRecency(items []ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].UpdatedAt.Equal(items[j].UpdatedAt) {
			return items[i].UpdatedAt.After(items[j].UpdatedAt)
		}
		return items[i].Id < items[j].Id
	})
}
