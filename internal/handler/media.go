package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"inkpress/internal/httputil"
	"inkpress/internal/model"
	"inkpress/internal/service"
	"inkpress/internal/transport/http/middleware"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// PresignCover handles POST /media/covers/presign: a presigned PUT URL for
// uploading a post cover straight to object storage.
func (h *MediaHandler) PresignCover(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.PresignCoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.mediaService.PresignCover(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Cover file too large")
		default:
			log.Printf("[ERROR] Presign cover handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to presign upload")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
