package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.category.List(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	writeJSON(w, api.CategoryListResponse{Categories: categories})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	category, err := h.category.Create(r.Context(), domain.CategoryCreationData{
		BoardId:     chi.URLParam(r, "board"),
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		Position:    body.Position,
		CreatedBy:   mw.GetViewerFromContext(r).Identity,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.CategoryResponse{Category: category})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateCategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	category, err := h.category.Update(r.Context(), chi.URLParam(r, "category"), domain.CategoryUpdateData{
		Name:        body.Name,
		Description: body.Description,
		Color:       body.Color,
		IsHidden:    body.IsHidden,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.CategoryResponse{Category: category})
}

func (h *Handler) UpdateCategoryPosition(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateCategoryPositionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	category, err := h.category.UpdatePosition(r.Context(), body.BoardId, chi.URLParam(r, "category"), *body.Position)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.CategoryResponse{Category: category})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.category.Delete(r.Context(), chi.URLParam(r, "category")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
