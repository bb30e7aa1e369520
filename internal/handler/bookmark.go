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

type BookmarkHandler struct {
	bookmarkService *service.BookmarkService
	resolver        *service.ResolverService
}

func NewBookmarkHandler(bookmarkService *service.BookmarkService, resolver *service.ResolverService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		resolver:        resolver,
	}
}

// Add handles POST /bookmarks with a post identifier in the body.
func (h *BookmarkHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	postID, err := h.resolver.ResolvePost(r.Context(), req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPostID):
			httputil.WriteBadRequest(w, "Invalid post ID")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] Add bookmark handler: post=%s err=%v", req.PostID, err)
			httputil.WriteInternalError(w, "Failed to bookmark post")
		}
		return
	}

	bookmark, err := h.bookmarkService.Add(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyBookmarked):
			httputil.WriteConflict(w, "Post already bookmarked")
		default:
			log.Printf("[ERROR] Add bookmark handler: user=%s post=%s err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to bookmark post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, bookmark)
}

// Remove handles DELETE /bookmarks with a post identifier in the body.
func (h *BookmarkHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	postID, err := h.resolver.ResolvePost(r.Context(), req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPostID):
			httputil.WriteBadRequest(w, "Invalid post ID")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] Remove bookmark handler: post=%s err=%v", req.PostID, err)
			httputil.WriteInternalError(w, "Failed to remove bookmark")
		}
		return
	}

	if err := h.bookmarkService.Remove(r.Context(), userID, postID); err != nil {
		log.Printf("[ERROR] Remove bookmark handler: user=%s post=%s err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to remove bookmark")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Bookmark removed"})
}

// List handles GET /bookmarks for the authenticated user.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit, offset := pagination(r)
	bookmarks, err := h.bookmarkService.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] List bookmarks handler: user=%s err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get bookmarks")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, bookmarks)
}
