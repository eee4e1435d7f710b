package domain

import (
	"sort"
	"time"
)

type Category struct {
	Id          CategoryId `json:"id"`
	BoardId     BoardId    `json:"board_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Color       string     `json:"color"`
	Position    int        `json:"position"`
	IsHidden    bool       `json:"is_hidden"`
	CreatedBy   Identity   `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CategoryCreationData struct {
	BoardId     BoardId
	Name        string
	Description *string
	Color       string
	Position    *int // nil appends after the last category
	CreatedBy   Identity
}

// CategoryUpdateData carries only the fields being changed.
type CategoryUpdateData struct {
	Name        *string
	Description *string
	Color       *string
	IsHidden    *bool
}

// SortCategories orders categories by position. Equal positions fall back to
// creation time and then id so the order is stable across clients.
func SortCategories(cs []Category) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Position != cs[j].Position {
			return cs[i].Position < cs[j].Position
		}
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.Before(cs[j].CreatedAt)
		}
		return cs[i].Id < cs[j].Id
	})
}
