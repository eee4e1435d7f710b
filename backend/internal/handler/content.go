package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

func (h *Handler) ListContentItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.List(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if items == nil {
		items = []domain.ContentItem{}
	}

	writeJSON(w, api.ContentItemListResponse{Items: items})
}

func (h *Handler) CreateContentItem(w http.ResponseWriter, r *http.Request) {
	var body api.CreateContentItemRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	item, err := h.content.Create(r.Context(), mw.GetViewerFromContext(r), domain.ContentItemCreationData{
		BoardId:        chi.URLParam(r, "board"),
		CategoryId:     body.CategoryId,
		Type:           domain.ContentType(body.Type),
		Content:        body.Content,
		AuthorName:     body.AuthorName,
		ContentPayload: body.ContentPayload.ToDomain(),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.ContentItemResponse{ContentItem: item})
}

func (h *Handler) GetContentItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.content.Get(r.Context(), chi.URLParam(r, "item"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ContentItemResponse{ContentItem: item})
}

func (h *Handler) UpdateContentItem(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateContentItemRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	item, err := h.content.Update(r.Context(), mw.GetViewerFromContext(r), chi.URLParam(r, "item"), domain.ContentItemUpdateData{
		CategoryId:     body.CategoryId,
		ClearCategory:  body.ClearCategory,
		Content:        body.Content,
		AuthorName:     body.AuthorName,
		ContentPayload: body.ContentPayload.ToDomain(),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ContentItemResponse{ContentItem: item})
}

func (h *Handler) DeleteContentItem(w http.ResponseWriter, r *http.Request) {
	if err := h.content.Delete(r.Context(), mw.GetViewerFromContext(r), chi.URLParam(r, "item")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
