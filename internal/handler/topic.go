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

type TopicHandler struct {
	topicService *service.TopicService
	postService  *service.PostService
	resolver     *service.ResolverService
}

func NewTopicHandler(
	topicService *service.TopicService,
	postService *service.PostService,
	resolver *service.ResolverService,
) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
		postService:  postService,
		resolver:     resolver,
	}
}

func (h *TopicHandler) resolveTopicID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := h.resolver.ResolveTopic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, model.ErrTopicNotFound) {
			httputil.WriteNotFound(w, "Topic not found")
		} else {
			log.Printf("[ERROR] Resolve topic handler: id=%s err=%v", chi.URLParam(r, "id"), err)
			httputil.WriteInternalError(w, "Failed to resolve topic")
		}
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /topics.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topicService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List topics handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list topics")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, topics)
}

// Create handles POST /topics.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	topic, err := h.topicService.Create(r.Context(), &req)
	if err != nil {
		var vErr *model.ValidationError
		switch {
		case errors.As(err, &vErr):
			httputil.WriteValidationFailed(w, vErr.Errors)
		case errors.Is(err, model.ErrTopicExists):
			httputil.WriteConflict(w, "Topic already exists")
		default:
			log.Printf("[ERROR] Create topic handler: name=%s err=%v", req.Name, err)
			httputil.WriteInternalError(w, "Failed to create topic")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, topic)
}

// Get handles GET /topics/{id}; the identifier is a UUID or a slug.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.resolveTopicID(w, r)
	if !ok {
		return
	}

	topic, err := h.topicService.Get(r.Context(), topicID)
	if err != nil {
		if errors.Is(err, model.ErrTopicNotFound) {
			httputil.WriteNotFound(w, "Topic not found")
			return
		}
		log.Printf("[ERROR] Get topic handler: topic=%s err=%v", topicID, err)
		httputil.WriteInternalError(w, "Failed to get topic")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, topic)
}

// Posts handles GET /topics/{id}/posts.
func (h *TopicHandler) Posts(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.resolveTopicID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	posts, err := h.postService.ListByTopic(r.Context(), topicID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Topic posts handler: topic=%s err=%v", topicID, err)
		httputil.WriteInternalError(w, "Failed to get posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Follow handles POST /topics/{id}/follow.
func (h *TopicHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	topicID, ok := h.resolveTopicID(w, r)
	if !ok {
		return
	}

	if err := h.topicService.Follow(r.Context(), topicID, userID); err != nil {
		if errors.Is(err, model.ErrTopicNotFound) {
			httputil.WriteNotFound(w, "Topic not found")
			return
		}
		log.Printf("[ERROR] Follow topic handler: user=%s topic=%s err=%v", userID, topicID, err)
		httputil.WriteInternalError(w, "Failed to follow topic")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Topic followed"})
}

// Unfollow handles DELETE /topics/{id}/follow.
func (h *TopicHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	topicID, ok := h.resolveTopicID(w, r)
	if !ok {
		return
	}

	if err := h.topicService.Unfollow(r.Context(), topicID, userID); err != nil {
		log.Printf("[ERROR] Unfollow topic handler: user=%s topic=%s err=%v", userID, topicID, err)
		httputil.WriteInternalError(w, "Failed to unfollow topic")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Topic unfollowed"})
}
