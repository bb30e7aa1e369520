package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/queue"
	"inkpress/internal/repository"
)

// CommentService handles the two-level comment thread, its counters and
// comment claps.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	publisher   queue.Publisher
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	publisher queue.Publisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
	}
}

// recount recomputes the post's comments_count from the source rows. A full
// COUNT, not an increment, so concurrent writers converge on the truth.
func (s *CommentService) recount(ctx context.Context, postID uuid.UUID) {
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		log.Printf("[CommentService] Failed to recount comments: post=%s err=%v", postID, err)
		return
	}
	if err := s.postRepo.SetCommentsCount(ctx, postID, count); err != nil {
		log.Printf("[CommentService] Failed to store comment count: post=%s err=%v", postID, err)
	}
}

// Create adds a comment or a reply. A reply's parent must belong to the same
// post. The post author is notified for a top-level comment, the parent's
// author for a reply; self-notifications are never published.
func (s *CommentService) Create(ctx context.Context, postID, userID uuid.UUID, req *model.CreateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrContentRequired
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var parent *model.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, model.ErrCommentNotFound
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.recount(ctx, postID)

	var event queue.NotificationEvent
	var recipient uuid.UUID
	if parent != nil {
		recipient = parent.UserID
		event = queue.NewReplyEvent(userID, recipient, postID, comment.ID, post.Title)
	} else {
		recipient = post.UserID
		event = queue.NewCommentEvent(userID, recipient, postID, comment.ID, post.Title)
	}
	if recipient != userID {
		if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
			log.Printf("[CommentService] Failed to publish %s event: comment=%s err=%v", event.Type, comment.ID, err)
		}
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// List returns a page of top-level comments with every direct reply eagerly
// attached. Replies are one level deep and never paginated here.
func (s *CommentService) List(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	exists, err := s.postRepo.ExistsByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	comments, err := s.commentRepo.ListTopLevel(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		replies, err := s.commentRepo.ListReplies(ctx, comments[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list replies: %w", err)
		}
		comments[i].Replies = replies
	}

	return comments, nil
}

// ListReplies returns a page of one comment's direct replies.
func (s *CommentService) ListReplies(ctx context.Context, commentID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	exists, err := s.commentRepo.ExistsByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("check comment exists: %w", err)
	}
	if !exists {
		return nil, model.ErrCommentNotFound
	}
	return s.commentRepo.ListRepliesPage(ctx, commentID, limit, offset)
}

// Update edits an owned comment. Someone else's comment reads as not-found.
func (s *CommentService) Update(ctx context.Context, id, userID uuid.UUID, req *model.UpdateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	return s.commentRepo.Update(ctx, id, userID, content)
}

// Delete removes an owned comment and recounts the post's comments.
func (s *CommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	postID, err := s.commentRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	s.recount(ctx, postID)
	return nil
}

// Clap applies exactly one clap; the requested count is accepted and ignored.
// Comment claps carry no per-user attribution.
func (s *CommentService) Clap(ctx context.Context, id uuid.UUID, req model.ClapRequest) (*model.Comment, error) {
	_ = req.Count

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.UpdateClaps(ctx, id, comment.ClapsCount+1)
}

// Stats reports a comment's clap and reply counters. UserClaps is always
// zero since claps are not attributed.
func (s *CommentService) Stats(ctx context.Context, id uuid.UUID) (*model.CommentStats, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.CountReplies(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count replies: %w", err)
	}
	return &model.CommentStats{
		ClapsCount:   comment.ClapsCount,
		RepliesCount: replies,
		UserClaps:    0,
	}, nil
}
