package api

import "github.com/itchan-dev/simpleboard/shared/domain"

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Color       string  `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Position    *int    `json:"position,omitempty" validate:"omitempty,gte=0"` // appended last when absent
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsHidden    *bool   `json:"is_hidden,omitempty"`
}

// UpdateCategoryPositionRequest carries the board id so the update can be
// scoped to the board's sibling set.
type UpdateCategoryPositionRequest struct {
	BoardId  string `json:"board_id" validate:"required"`
	Position *int   `json:"position" validate:"required,gte=0"`
}

type CategoryResponse struct {
	domain.Category
}

type CategoryListResponse struct {
	Categories []domain.Category `json:"categories"`
}
