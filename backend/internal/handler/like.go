package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/simpleboard/shared/api"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

func (h *Handler) GetLikes(w http.ResponseWriter, r *http.Request) {
	status, err := h.like.Status(r.Context(), mw.GetViewerFromContext(r), chi.URLParam(r, "item"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.LikeStatusResponse{Count: status.Count, Liked: status.Liked})
}

func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	added, err := h.like.Add(r.Context(), mw.GetViewerFromContext(r), chi.URLParam(r, "item"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.AddLikeResponse{Added: added})
}

func (h *Handler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	removed, err := h.like.Remove(r.Context(), mw.GetViewerFromContext(r), chi.URLParam(r, "item"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.RemoveLikeResponse{Removed: removed})
}
