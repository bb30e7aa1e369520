package handler

import (
	"encoding/json"
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

type CommentHandler struct {
	commentService *service.CommentService
	resolver       *service.ResolverService
}

func NewCommentHandler(commentService *service.CommentService, resolver *service.ResolverService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		resolver:       resolver,
	}
}

func (h *CommentHandler) resolveCommentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := h.resolver.ResolveComment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCommentID):
			httputil.WriteBadRequest(w, "Invalid comment ID")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		default:
			log.Printf("[ERROR] Resolve comment handler: id=%s err=%v", chi.URLParam(r, "id"), err)
			httputil.WriteInternalError(w, "Failed to resolve comment")
		}
		return uuid.Nil, false
	}
	return id, true
}

func (h *CommentHandler) resolvePostID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := h.resolver.ResolvePost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPostID):
			httputil.WriteBadRequest(w, "Invalid post ID")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] Resolve post handler: id=%s err=%v", chi.URLParam(r, "id"), err)
			httputil.WriteInternalError(w, "Failed to resolve post")
		}
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /posts/{id}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := h.resolvePostID(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), postID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		case errors.Is(err, model.ErrContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		default:
			log.Printf("[ERROR] Create comment handler: user=%s post=%s err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// List handles GET /posts/{id}/comments, top-level comments with replies.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.resolvePostID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	comments, err := h.commentService.List(r.Context(), postID, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] List comments handler: post=%s err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// Update handles PUT /comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := h.resolveCommentID(w, r)
	if !ok {
		return
	}

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		default:
			log.Printf("[ERROR] Update comment handler: user=%s comment=%s err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to update comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := h.resolveCommentID(w, r)
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		log.Printf("[ERROR] Delete comment handler: user=%s comment=%s err=%v", userID, commentID, err)
		httputil.WriteInternalError(w, "Failed to delete comment")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}

// Clap handles POST /comments/{id}/claps.
func (h *CommentHandler) Clap(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, ok := h.resolveCommentID(w, r)
	if !ok {
		return
	}

	var req model.ClapRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}
	}

	comment, err := h.commentService.Clap(r.Context(), commentID, req)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		log.Printf("[ERROR] Clap comment handler: comment=%s err=%v", commentID, err)
		httputil.WriteInternalError(w, "Failed to clap")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Replies handles GET /comments/{id}/replies.
func (h *CommentHandler) Replies(w http.ResponseWriter, r *http.Request) {
	commentID, ok := h.resolveCommentID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	replies, err := h.commentService.ListReplies(r.Context(), commentID, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		log.Printf("[ERROR] List replies handler: comment=%s err=%v", commentID, err)
		httputil.WriteInternalError(w, "Failed to get replies")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, replies)
}

// Stats handles GET /comments/{id}/stats.
func (h *CommentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	commentID, ok := h.resolveCommentID(w, r)
	if !ok {
		return
	}

	stats, err := h.commentService.Stats(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		log.Printf("[ERROR] Comment stats handler: comment=%s err=%v", commentID, err)
		httputil.WriteInternalError(w, "Failed to get stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}
