package api

import (
	"github.com/itchan-dev/simpleboard/shared/domain"
)

// Request DTOs

// CreateBoardRequest creates a board. An empty id asks the server to generate one.
type CreateBoardRequest struct {
	Id          string  `json:"id,omitempty" validate:"omitempty,max=64"`
	Title       string  `json:"title,omitempty" validate:"max=500"` // defaults to "Board <id>"
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// Response DTOs

type BoardResponse struct {
	domain.Board
}

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}
