package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/queue"
	"inkpress/internal/repository"
)

const wordsPerMinute = 200

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// ReadingTime estimates minutes to read HTML content: tags stripped, words
// counted, 200 words per minute, rounded up, never below one minute.
func ReadingTime(content string) int {
	text := htmlTagRe.ReplaceAllString(content, " ")
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// PostService handles the post lifecycle, the feed and post claps.
type PostService struct {
	postRepo    repository.PostRepository
	topicRepo   repository.TopicRepository
	followRepo  repository.FollowRepository
	historyRepo repository.HistoryRepository
	publisher   queue.Publisher
}

func NewPostService(
	postRepo repository.PostRepository,
	topicRepo repository.TopicRepository,
	followRepo repository.FollowRepository,
	historyRepo repository.HistoryRepository,
	publisher queue.Publisher,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		topicRepo:   topicRepo,
		followRepo:  followRepo,
		historyRepo: historyRepo,
		publisher:   publisher,
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return model.ErrTitleRequired
	}
	if len(title) > model.MaxPostTitleLength {
		return model.ErrTitleTooLong
	}
	return nil
}

func validateStatus(status string) error {
	if status != model.PostStatusDraft && status != model.PostStatusPublished {
		return model.ErrInvalidStatus
	}
	return nil
}

// Create stores a new post. Status defaults to draft; published_at is stamped
// only when the post is born published.
func (s *PostService) Create(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.PostStatusDraft
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:      userID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Status:      status,
		ReadingTime: ReadingTime(req.Content),
	}
	if status == model.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if len(req.Topics) > 0 {
		if err := s.postRepo.ReplaceTopics(ctx, post.ID, req.Topics); err != nil {
			return nil, fmt.Errorf("attach topics: %w", err)
		}
	}

	return s.getWithTopics(ctx, post.ID)
}

func (s *PostService) getWithTopics(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	topics, err := s.topicRepo.ListByPost(ctx, id)
	if err != nil {
		log.Printf("[PostService] Failed to load topics: post=%s err=%v", id, err)
	} else {
		post.Topics = topics
	}
	return post, nil
}

// Get returns a post by canonical ID and applies the read side effects:
// the view counter bumps and, for authenticated viewers, the reading-history
// marker is refreshed. Side-effect failures are logged, never surfaced.
func (s *PostService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Post, error) {
	post, err := s.getWithTopics(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		log.Printf("[PostService] Failed to increment views: post=%s err=%v", id, err)
	} else {
		post.ViewsCount++
	}

	if viewerID != nil {
		if err := s.historyRepo.Upsert(ctx, *viewerID, id); err != nil {
			log.Printf("[PostService] Failed to record reading history: user=%s post=%s err=%v", *viewerID, id, err)
		}
	}

	return post, nil
}

// GetByNumber is the display-number read path; it only sees published posts.
func (s *PostService) GetByNumber(ctx context.Context, number int64, viewerID *uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.GetPublishedByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID, viewerID)
}

// Update applies a partial edit scoped to the owner. Reading time is
// recomputed when content changes; a non-nil topic set replaces the whole
// set. A transition to published stamps published_at only when it is still
// unset, so a status round-trip keeps the original timestamp.
func (s *PostService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := validateStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	var readingTime *int
	if req.Content != nil {
		rt := ReadingTime(*req.Content)
		readingTime = &rt
	}

	var publishedAt *time.Time
	if req.Status != nil && *req.Status == model.PostStatusPublished {
		current, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.PublishedAt == nil {
			now := time.Now().UTC()
			publishedAt = &now
		}
	}

	post, err := s.postRepo.Update(ctx, id, userID, req, readingTime, publishedAt)
	if err != nil {
		return nil, err
	}

	if req.Topics != nil {
		if err := s.postRepo.ReplaceTopics(ctx, id, req.Topics); err != nil {
			return nil, fmt.Errorf("replace topics: %w", err)
		}
	}

	topics, err := s.topicRepo.ListByPost(ctx, id)
	if err == nil {
		post.Topics = topics
	}
	return post, nil
}

// Publish always stamps status and a fresh published_at, even when
// re-publishing. The update path's only-if-unset rule does not apply here.
func (s *PostService) Publish(ctx context.Context, id, userID uuid.UUID) (*model.Post, error) {
	return s.postRepo.Publish(ctx, id, userID, time.Now().UTC())
}

// Delete removes an owned post.
func (s *PostService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.postRepo.Delete(ctx, id, userID)
}

// List returns published posts, newest first, with optional topic filter and
// title/content search.
func (s *PostService) List(ctx context.Context, opts repository.ListPostsOptions) ([]model.Post, error) {
	return s.postRepo.ListPublished(ctx, opts)
}

// Feed selects one source by strict precedence: posts from followed users,
// else posts under followed topics, else all published posts. No blending.
func (s *PostService) Feed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Post, error) {
	followedUsers, err := s.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get followed users: %w", err)
	}
	if len(followedUsers) > 0 {
		return s.postRepo.ListByAuthors(ctx, followedUsers, limit, offset)
	}

	followedTopics, err := s.topicRepo.GetFollowedTopicIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get followed topics: %w", err)
	}
	if len(followedTopics) > 0 {
		return s.postRepo.ListByTopics(ctx, followedTopics, limit, offset)
	}

	return s.postRepo.ListPublished(ctx, repository.ListPostsOptions{Limit: limit, Offset: offset})
}

// Drafts returns the owner's drafts, most recently edited first.
func (s *PostService) Drafts(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	return s.postRepo.ListDraftsByUser(ctx, userID)
}

// ListByUser returns a user's published posts.
func (s *PostService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Post, error) {
	return s.postRepo.ListPublishedByUser(ctx, userID, limit, offset)
}

// ListByTopic returns published posts under one topic.
func (s *PostService) ListByTopic(ctx context.Context, topicID uuid.UUID, limit, offset int) ([]model.Post, error) {
	return s.postRepo.ListPublished(ctx, repository.ListPostsOptions{Limit: limit, Offset: offset, TopicID: &topicID})
}

// Clap applies exactly one clap. The request may carry any count; one is
// added per call regardless. The author is notified unless clapping their
// own post.
func (s *PostService) Clap(ctx context.Context, id, actorID uuid.UUID, req model.ClapRequest) (*model.Post, error) {
	_ = req.Count // accepted, not honored

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.postRepo.UpdateClaps(ctx, id, post.ClapsCount+1)
	if err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		event := queue.NewClapEvent(actorID, post.UserID, id, post.Title)
		if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
			log.Printf("[PostService] Failed to publish clap event: post=%s err=%v", id, err)
		}
	}

	return updated, nil
}
