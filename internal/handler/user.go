package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/httputil"
	"inkpress/internal/model"
	"inkpress/internal/service"
	"inkpress/internal/transport/http/middleware"
)

type UserHandler struct {
	userService     *service.UserService
	postService     *service.PostService
	bookmarkService *service.BookmarkService
	historyService  *service.HistoryService
	mediaService    *service.MediaService
	resolver        *service.ResolverService
}

func NewUserHandler(
	userService *service.UserService,
	postService *service.PostService,
	bookmarkService *service.BookmarkService,
	historyService *service.HistoryService,
	mediaService *service.MediaService,
	resolver *service.ResolverService,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		postService:     postService,
		bookmarkService: bookmarkService,
		historyService:  historyService,
		mediaService:    mediaService,
		resolver:        resolver,
	}
}

// Get handles GET /users/{id}. The identifier may be a UUID, display number
// or username.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Get user handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Get user handler: id=%s err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// GetByUsername handles GET /users/username/{username}.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Get user by username handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/{id}. Callers can only update themselves; a
// mismatch reads as not-found.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil || id != callerID {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), id, req)
	if err != nil {
		var vErr *model.ValidationError
		switch {
		case errors.As(err, &vErr):
			httputil.WriteValidationFailed(w, vErr.Errors)
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] Update user handler: id=%s err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// ChangePassword handles PUT /users/{id}/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil || id != callerID {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(r.Context(), id, &req); err != nil {
		var vErr *model.ValidationError
		switch {
		case errors.As(err, &vErr):
			httputil.WriteValidationFailed(w, vErr.Errors)
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Current password is incorrect")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] Change password handler: id=%s err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to change password")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// UploadAvatar handles POST /users/{id}/avatar as a multipart upload.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil || id != callerID {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	if err := r.ParseMultipartForm(model.MaxAvatarSizeBytes); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Missing avatar file")
		return
	}
	defer file.Close()

	result, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Avatar file too large")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Unsupported image type")
		default:
			log.Printf("[ERROR] Upload avatar handler: user=%s err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to upload avatar")
		}
		return
	}

	user, err := h.userService.SetAvatar(r.Context(), id, result.URL)
	if err != nil {
		log.Printf("[ERROR] Upload avatar handler: store url user=%s err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to save avatar")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Posts handles GET /users/{id}/posts, the user's published posts.
func (h *UserHandler) Posts(w http.ResponseWriter, r *http.Request) {
	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] User posts handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get posts")
		return
	}

	limit, offset := pagination(r)
	posts, err := h.postService.ListByUser(r.Context(), id, limit, offset)
	if err != nil {
		log.Printf("[ERROR] User posts handler: user=%s err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to get posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Stats handles GET /users/{id}/stats.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] User stats handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get stats")
		return
	}

	stats, err := h.userService.GetStats(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] User stats handler: user=%s err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to get stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// Bookmarks handles GET /users/{id}/bookmarks; only the owner may list them.
func (h *UserHandler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil || id != callerID {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	limit, offset := pagination(r)
	bookmarks, err := h.bookmarkService.List(r.Context(), id, limit, offset)
	if err != nil {
		log.Printf("[ERROR] User bookmarks handler: user=%s err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to get bookmarks")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, bookmarks)
}

// History handles GET /users/{id}/history; only the owner may read it.
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil || id != callerID {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	limit, offset := pagination(r)
	entries, err := h.historyService.List(r.Context(), id, limit, offset)
	if err != nil {
		log.Printf("[ERROR] User history handler: user=%s err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to get reading history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, entries)
}
