package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/httputil"
	"inkpress/internal/model"
	"inkpress/internal/service"
	"inkpress/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	resolver      *service.ResolverService
}

func NewFollowHandler(followService *service.FollowService, resolver *service.ResolverService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		resolver:      resolver,
	}
}

func (h *FollowHandler) resolveUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := h.resolver.ResolveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
		} else {
			log.Printf("[ERROR] Resolve user handler: id=%s err=%v", chi.URLParam(r, "id"), err)
			httputil.WriteInternalError(w, "Failed to resolve user")
		}
		return uuid.Nil, false
	}
	return id, true
}

// Follow handles POST /follow/{id}.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	targetID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	if err := h.followService.Follow(r.Context(), userID, targetID); err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "Cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteConflict(w, "Already following this user")
		default:
			log.Printf("[ERROR] Follow handler: user=%s target=%s err=%v", userID, targetID, err)
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Followed successfully"})
}

// Unfollow handles DELETE /follow/{id}.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	targetID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	if err := h.followService.Unfollow(r.Context(), userID, targetID); err != nil {
		if errors.Is(err, model.ErrNotFollowing) {
			httputil.WriteNotFound(w, "Not following this user")
			return
		}
		log.Printf("[ERROR] Unfollow handler: user=%s target=%s err=%v", userID, targetID, err)
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Unfollowed successfully"})
}

// Status handles GET /follow/{id}: whether the caller follows the user.
func (h *FollowHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	targetID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	following, err := h.followService.IsFollowing(r.Context(), userID, targetID)
	if err != nil {
		log.Printf("[ERROR] Follow status handler: user=%s target=%s err=%v", userID, targetID, err)
		httputil.WriteInternalError(w, "Failed to check follow status")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"following": following})
}

// Followers handles GET /follow/{id}/followers.
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	targetID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	users, err := h.followService.Followers(r.Context(), targetID, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Followers handler: user=%s err=%v", targetID, err)
		httputil.WriteInternalError(w, "Failed to get followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// Following handles GET /follow/{id}/following.
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	targetID, ok := h.resolveUserID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	users, err := h.followService.Following(r.Context(), targetID, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Following handler: user=%s err=%v", targetID, err)
		httputil.WriteInternalError(w, "Failed to get following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}
