package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/model"
)

// ListPostsOptions controls the public post listing: offset pagination plus
// optional topic filter and case-insensitive search.
type ListPostsOptions struct {
	Limit   int
	Offset  int
	TopicID *uuid.UUID
	Search  string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error)
	GetIDByUsername(ctx context.Context, username string) (uuid.UUID, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHashed string) error
	GetStats(ctx context.Context, id uuid.UUID) (*model.UserStats, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// GetPublishedByNumber resolves the display-number read path, which only
	// sees published posts.
	GetPublishedByNumber(ctx context.Context, number int64) (*model.Post, error)
	GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListPublished(ctx context.Context, opts ListPostsOptions) ([]model.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]model.Post, error)
	ListByTopics(ctx context.Context, topicIDs []uuid.UUID, limit, offset int) ([]model.Post, error)
	ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	ListPublishedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Post, error)
	// Update applies only the non-nil fields; readingTime accompanies a
	// content change and a non-nil publishedAt is written as given. Scoped
	// to the owner; zero rows means not found.
	Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest, readingTime *int, publishedAt *time.Time) (*model.Post, error)
	// Publish stamps status and the given published_at unconditionally.
	Publish(ctx context.Context, id, userID uuid.UUID, publishedAt time.Time) (*model.Post, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	UpdateClaps(ctx context.Context, id uuid.UUID, claps int) (*model.Post, error)
	SetCommentsCount(ctx context.Context, id uuid.UUID, count int) error
	// ReplaceTopics swaps the whole topic set (delete-all-then-insert).
	ReplaceTopics(ctx context.Context, postID uuid.UUID, topicIDs []uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListTopLevel(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error)
	// ListReplies returns every direct reply, oldest first, unpaginated.
	ListReplies(ctx context.Context, parentID uuid.UUID) ([]model.Comment, error)
	ListRepliesPage(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]model.Comment, error)
	// Update and Delete are scoped to (id AND user_id); zero matched rows is
	// reported as ErrCommentNotFound regardless of why.
	Update(ctx context.Context, id, userID uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (postID uuid.UUID, err error)
	CountByPost(ctx context.Context, postID uuid.UUID) (int, error)
	CountReplies(ctx context.Context, parentID uuid.UUID) (int, error)
	UpdateClaps(ctx context.Context, id uuid.UUID, claps int) (*model.Comment, error)
}

type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	List(ctx context.Context) ([]model.Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Topic, error)
	GetIDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Topic, error)
	Follow(ctx context.Context, topicID, userID uuid.UUID) error
	Unfollow(ctx context.Context, topicID, userID uuid.UUID) error
	GetFollowedTopicIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uuid.UUID) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	GetFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error)
	GetFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error)
	GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type BookmarkRepository interface {
	Create(ctx context.Context, userID, postID uuid.UUID) (*model.Bookmark, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.BookmarkedPost, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type HistoryRepository interface {
	// Upsert overwrites the (user, post) row's timestamp: a last-read-at
	// marker, not an append log.
	Upsert(ctx context.Context, userID, postID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.HistoryEntry, error)
}
