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
	"inkpress/internal/repository"
	"inkpress/internal/service"
	"inkpress/internal/transport/http/middleware"
)

type PostHandler struct {
	postService  *service.PostService
	topicService *service.TopicService
	resolver     *service.ResolverService
}

func NewPostHandler(
	postService *service.PostService,
	topicService *service.TopicService,
	resolver *service.ResolverService,
) *PostHandler {
	return &PostHandler{
		postService:  postService,
		topicService: topicService,
		resolver:     resolver,
	}
}

// resolvePostID maps the {id} path segment to a canonical post ID and writes
// the response on failure.
func (h *PostHandler) resolvePostID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
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

// List handles GET /posts with optional topic and search filters.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	opts := repository.ListPostsOptions{
		Limit:  limit,
		Offset: offset,
		Search: r.URL.Query().Get("search"),
	}

	if topic := r.URL.Query().Get("topic"); topic != "" {
		topicID, err := h.resolver.ResolveTopic(r.Context(), topic)
		if err != nil {
			if errors.Is(err, model.ErrTopicNotFound) {
				httputil.WriteNotFound(w, "Topic not found")
				return
			}
			log.Printf("[ERROR] List posts handler: topic=%s err=%v", topic, err)
			httputil.WriteInternalError(w, "Failed to list posts")
			return
		}
		opts.TopicID = &topicID
	}

	posts, err := h.postService.List(r.Context(), opts)
	if err != nil {
		log.Printf("[ERROR] List posts handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Feed handles GET /posts/feed for the authenticated user.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit, offset := pagination(r)
	posts, err := h.postService.Feed(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Feed handler: user=%s err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Drafts handles GET /posts/drafts for the authenticated user.
func (h *PostHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	posts, err := h.postService.Drafts(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] Drafts handler: user=%s err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load drafts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Post title is required")
		case errors.Is(err, model.ErrTitleTooLong):
			httputil.WriteBadRequest(w, "Post title too long")
		case errors.Is(err, model.ErrInvalidStatus):
			httputil.WriteBadRequest(w, "Invalid post status")
		default:
			log.Printf("[ERROR] Create post handler: user=%s err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Get handles GET /posts/{id}. A UUID reads any status; a display number
// reads published posts only.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	var viewerID *uuid.UUID
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	var post *model.Post
	var err error
	if idParam := chi.URLParam(r, "id"); service.IsDisplayNumber(idParam) {
		post, err = h.postService.GetByNumber(r.Context(), service.ParseDisplayNumber(idParam), viewerID)
	} else {
		postID, ok := h.resolvePostID(w, r)
		if !ok {
			return
		}
		post, err = h.postService.Get(r.Context(), postID, viewerID)
	}
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Get post handler: id=%s err=%v", chi.URLParam(r, "id"), err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Update handles PUT /posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := h.resolvePostID(w, r)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), postID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrTitleRequired):
			httputil.WriteBadRequest(w, "Post title is required")
		case errors.Is(err, model.ErrTitleTooLong):
			httputil.WriteBadRequest(w, "Post title too long")
		case errors.Is(err, model.ErrInvalidStatus):
			httputil.WriteBadRequest(w, "Invalid post status")
		default:
			log.Printf("[ERROR] Update post handler: user=%s post=%s err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Publish handles POST /posts/{id}/publish.
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := h.resolvePostID(w, r)
	if !ok {
		return
	}

	post, err := h.postService.Publish(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Publish post handler: user=%s post=%s err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to publish post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := h.resolvePostID(w, r)
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), postID, userID); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Delete post handler: user=%s post=%s err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to delete post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// Clap handles POST /posts/{id}/claps.
func (h *PostHandler) Clap(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := h.resolvePostID(w, r)
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

	post, err := h.postService.Clap(r.Context(), postID, userID, req)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Clap post handler: user=%s post=%s err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to clap")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}
