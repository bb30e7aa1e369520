package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/repository"
)

// BookmarkService handles saved posts.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, postRepo repository.PostRepository) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
	}
}

// Add bookmarks a post. Saving the same post twice is a conflict, not a no-op.
func (s *BookmarkService) Add(ctx context.Context, userID, postID uuid.UUID) (*model.Bookmark, error) {
	exists, err := s.postRepo.ExistsByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}
	return s.bookmarkRepo.Create(ctx, userID, postID)
}

// Remove deletes the bookmark. Removing a bookmark that was never set is
// not an error.
func (s *BookmarkService) Remove(ctx context.Context, userID, postID uuid.UUID) error {
	return s.bookmarkRepo.Delete(ctx, userID, postID)
}

// IsBookmarked reports whether the user saved the post.
func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return s.bookmarkRepo.Exists(ctx, userID, postID)
}

// List returns the user's saved posts, most recently saved first.
func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.BookmarkedPost, error) {
	return s.bookmarkRepo.ListByUser(ctx, userID, limit, offset)
}
