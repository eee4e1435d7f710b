package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/simpleboard/backend/internal/service"
	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/utils"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

const uploadField = "file"

// UploadMedia stores a single multipart file for the board and answers with
// its public URL.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		utils.WriteErrorAndStatusCode(w, errors.BadRequest("Expected multipart/form-data"))
		return
	}
	maxRequestSize := validation.CalculateMaxRequestSize(h.cfg.Public.MaxUploadSize, 1<<20)
	if err := validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		maxSizeMB := validation.FormatSizeMB(h.cfg.Public.MaxUploadSize)
		http.Error(w, fmt.Sprintf("Upload exceeds the limit of %.0f MB", maxSizeMB), http.StatusRequestEntityTooLarge)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, errors.BadRequest("Missing file"))
		return
	}
	defer file.Close()

	mimeType, err := validation.DetectMimeType(header)
	if err != nil {
		mimeType = "application/octet-stream"
	}

	url, err := h.media.Upload(r.Context(), chi.URLParam(r, "board"), service.Upload{
		Data:     file,
		Filename: header.Filename,
		MimeType: mimeType,
		Size:     header.Size,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.UploadResponse{Url: url})
}

func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	f, err := h.media.Open(chi.URLParam(r, "*"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, filepath.Base(info.Name()), info.ModTime(), f)
}
