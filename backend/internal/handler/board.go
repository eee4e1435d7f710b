package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(r.Context(), domain.BoardCreationData{
		Id:          body.Id,
		Title:       body.Title,
		Description: body.Description,
		CreatedBy:   mw.GetViewerFromContext(r).Identity,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.BoardResponse{Board: board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.board.Get(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BoardResponse{Board: board})
}

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalIntQuery(r, "limit", 0)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boards, err := h.board.ListRecent(r.Context(), limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if boards == nil {
		boards = []domain.Board{}
	}

	writeJSON(w, api.BoardListResponse{Boards: boards})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Update(r.Context(), chi.URLParam(r, "board"), domain.BoardUpdateData{
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BoardResponse{Board: board})
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Delete(r.Context(), chi.URLParam(r, "board")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
